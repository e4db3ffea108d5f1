package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"eduglobal/internal/chat"
	"eduglobal/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive consultation chat",
	Long: `Starts a line-oriented consultation chat. Sessions persist across
runs; the reply streams into the terminal as it is generated.

Commands inside the chat:
  /new             start a new session
  /list            list sessions (newest first)
  /select <n|id>   switch to a session by list number or id prefix
  /delete <n|id>   delete a session
  /quit            exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func runChat(cmd *cobra.Command) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	slot, closeSlot, err := openSlot()
	if err != nil {
		return err
	}
	defer closeSlot()

	store := session.NewStore(slot)
	store.LoadOrInit()
	ctrl := chat.NewController(store, client)

	printer := &streamPrinter{store: store}
	store.Subscribe(printer.onChange)

	fmt.Printf("EduGlobal consultant (%s). Type /help for commands.\n\n", client.Model())
	printTranscript(store)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := handleCommand(store, line); quit {
				return nil
			}
			continue
		}

		printer.begin(store.ActiveID())
		fmt.Print("consultant> ")
		err := ctrl.SendTurn(cmd.Context(), store.ActiveID(), line)
		printer.end()
		fmt.Println()
		switch {
		case errors.Is(err, chat.ErrTurnInFlight):
			fmt.Println("still replying, please wait")
		case err != nil:
			fmt.Println("error:", err)
		}
	}
}

func handleCommand(store *session.Store, line string) (quit bool) {
	fields := strings.Fields(line)
	cmd, arg := fields[0], ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/new":
		store.CreateSession()
		fmt.Println("started a new session")
		printTranscript(store)
	case "/list":
		for i, s := range store.Sessions() {
			marker := " "
			if s.ID == store.ActiveID() {
				marker = "*"
			}
			fmt.Printf("%s %2d. %-42s %s\n", marker, i+1, s.Title, s.LastUpdated.Format("2006-01-02 15:04"))
		}
	case "/select":
		id, err := resolveSessionArg(store, arg)
		if err != nil {
			fmt.Println(err)
			return false
		}
		store.SelectSession(id)
		printTranscript(store)
	case "/delete":
		id, err := resolveSessionArg(store, arg)
		if err != nil {
			fmt.Println(err)
			return false
		}
		store.DeleteSession(id)
		fmt.Println("deleted")
		printTranscript(store)
	case "/help":
		fmt.Println("/new /list /select <n|id> /delete <n|id> /quit")
	default:
		fmt.Printf("unknown command %s\n", cmd)
	}
	return false
}

// resolveSessionArg accepts a 1-based list number or a session id prefix.
func resolveSessionArg(store *session.Store, arg string) (string, error) {
	if arg == "" {
		return "", errors.New("usage: /select <n|id>")
	}
	sessions := store.Sessions()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(sessions) {
			return "", fmt.Errorf("no session %d (have %d)", n, len(sessions))
		}
		return sessions[n-1].ID, nil
	}
	for _, s := range sessions {
		if strings.HasPrefix(s.ID, arg) {
			return s.ID, nil
		}
	}
	return "", fmt.Errorf("no session matching %q", arg)
}

func printTranscript(store *session.Store) {
	sess, ok := store.Active()
	if !ok {
		return
	}
	fmt.Printf("-- %s --\n", sess.Title)
	for _, m := range sess.Messages {
		speaker := "you"
		if m.Role == session.RoleAssistant {
			speaker = "consultant"
		}
		fmt.Printf("%s> %s\n", speaker, m.Text)
	}
}

// streamPrinter renders the growing assistant reply as the store patches
// it. Notifications arrive on the SendTurn goroutine, so no locking is
// needed around printed.
type streamPrinter struct {
	store     *session.Store
	sessionID string
	active    bool
	printed   int
}

func (p *streamPrinter) begin(sessionID string) {
	p.sessionID = sessionID
	p.active = true
	p.printed = 0
}

func (p *streamPrinter) end() { p.active = false }

func (p *streamPrinter) onChange() {
	if !p.active {
		return
	}
	sess, ok := p.store.Session(p.sessionID)
	if !ok || len(sess.Messages) == 0 {
		return
	}
	last := sess.Messages[len(sess.Messages)-1]
	if last.Role != session.RoleAssistant {
		return
	}
	if len(last.Text) < p.printed {
		// The partial reply was replaced wholesale (stream failure).
		fmt.Print("\n" + last.Text)
		p.printed = len(last.Text)
		return
	}
	fmt.Print(last.Text[p.printed:])
	p.printed = len(last.Text)
}
