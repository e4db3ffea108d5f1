// Package catalog holds the read-only content tables for the consultancy:
// partner universities, programs, scholarships and destination guides. The
// conversation core never mutates these; their only use inside the core is
// enriching the system instruction sent to the completion backend.
package catalog

// Country identifies a supported study destination.
type Country string

const (
	CountryCanada  Country = "Canada"
	CountryUSA     Country = "USA"
	CountryGermany Country = "Germany"
	CountryFrance  Country = "France"
	CountryItaly   Country = "Italy"
)

// University is a partner institution entry.
type University struct {
	ID          string
	Name        string
	Country     Country
	Location    string
	Province    string
	Ranking     int
	Description string
}

// Program is a study program offered by a partner institution.
type Program struct {
	ID             string
	UniversityID   string
	UniversityName string
	Country        Country
	Name           string
	Degree         string // Diploma, BSc, MSc, PhD, Post-Grad
	Field          string
	Tuition        int
	Currency       string
	Duration       string
	Intake         []string
	IELTS          float64
}

// Scholarship is a funding opportunity entry.
type Scholarship struct {
	ID          string
	Name        string
	Country     Country
	Provider    string
	Amount      string
	Deadline    string
	Eligibility string
	Type        string
}

// Destination is country-level guidance shown to prospective students.
type Destination struct {
	ID         string
	Name       string
	Country    Country
	VisaNotes  string
	WorkRights string
	AvgTuition string
}

var universities = []University{
	{ID: "1", Name: "University of Toronto", Country: CountryCanada, Location: "Toronto, Ontario", Province: "Ontario", Ranking: 1,
		Description: "A global leader in research and teaching, providing a diverse and comprehensive range of programs."},
	{ID: "2", Name: "University of British Columbia", Country: CountryCanada, Location: "Vancouver, BC", Province: "British Columbia", Ranking: 2,
		Description: "A global centre for research and teaching, consistently ranked among the 40 best universities in the world."},
	{ID: "3", Name: "McGill University", Country: CountryCanada, Location: "Montreal, Quebec", Province: "Quebec", Ranking: 3,
		Description: "Known for attracting the brightest students from across Canada and around the world."},
	{ID: "4", Name: "University of Waterloo", Country: CountryCanada, Location: "Waterloo, Ontario", Province: "Ontario", Ranking: 7,
		Description: "Home to the world's largest co-operative education program."},
	{ID: "5", Name: "Technical University of Munich", Country: CountryGermany, Location: "Munich, Bavaria", Province: "Bavaria", Ranking: 1,
		Description: "Germany's top technical university with tuition-free public education for most programs."},
	{ID: "6", Name: "Arizona State University", Country: CountryUSA, Location: "Tempe, Arizona", Province: "Arizona", Ranking: 9,
		Description: "One of the largest US public universities, known for innovation and generous merit scholarships."},
	{ID: "7", Name: "Sorbonne University", Country: CountryFrance, Location: "Paris", Province: "Île-de-France", Ranking: 2,
		Description: "Historic Paris research university with strong humanities and science faculties."},
	{ID: "8", Name: "Politecnico di Milano", Country: CountryItaly, Location: "Milan, Lombardy", Province: "Lombardy", Ranking: 1,
		Description: "Italy's leading engineering and design school with wide English-taught MSc offerings."},
}

var programs = []Program{
	{ID: "p1", UniversityID: "1", UniversityName: "University of Toronto", Country: CountryCanada, Name: "Computer Science",
		Degree: "BSc", Field: "IT", Tuition: 58000, Currency: "CAD", Duration: "4 Years", Intake: []string{"Fall", "Winter"}, IELTS: 6.5},
	{ID: "p2", UniversityID: "1", UniversityName: "University of Toronto", Country: CountryCanada, Name: "Data Science Master",
		Degree: "MSc", Field: "AI", Tuition: 42000, Currency: "CAD", Duration: "2 Years", Intake: []string{"Fall"}, IELTS: 7.0},
	{ID: "p3", UniversityID: "2", UniversityName: "University of British Columbia", Country: CountryCanada, Name: "Business Administration",
		Degree: "BSc", Field: "Business", Tuition: 45000, Currency: "CAD", Duration: "4 Years", Intake: []string{"Fall", "Summer"}, IELTS: 6.5},
	{ID: "p4", UniversityID: "4", UniversityName: "University of Waterloo", Country: CountryCanada, Name: "Software Engineering",
		Degree: "BSc", Field: "IT", Tuition: 61000, Currency: "CAD", Duration: "5 Years (Co-op)", Intake: []string{"Fall"}, IELTS: 7.0},
	{ID: "p5", UniversityID: "3", UniversityName: "McGill University", Country: CountryCanada, Name: "Cybersecurity Certificate",
		Degree: "Post-Grad", Field: "Cybersecurity", Tuition: 22000, Currency: "CAD", Duration: "1 Year", Intake: []string{"Fall", "Winter", "Summer"}, IELTS: 6.5},
	{ID: "p6", UniversityID: "5", UniversityName: "Technical University of Munich", Country: CountryGermany, Name: "Informatics",
		Degree: "MSc", Field: "IT", Tuition: 0, Currency: "EUR", Duration: "2 Years", Intake: []string{"Winter", "Summer"}, IELTS: 6.5},
	{ID: "p7", UniversityID: "6", UniversityName: "Arizona State University", Country: CountryUSA, Name: "Computer Science",
		Degree: "MSc", Field: "IT", Tuition: 32000, Currency: "USD", Duration: "2 Years", Intake: []string{"Fall", "Spring"}, IELTS: 6.5},
	{ID: "p8", UniversityID: "8", UniversityName: "Politecnico di Milano", Country: CountryItaly, Name: "Management Engineering",
		Degree: "MSc", Field: "Business", Tuition: 3900, Currency: "EUR", Duration: "2 Years", Intake: []string{"Fall"}, IELTS: 6.0},
}

var scholarships = []Scholarship{
	{ID: "s1", Name: "Lester B. Pearson International Scholarship", Country: CountryCanada, Provider: "University of Toronto",
		Amount: "Full tuition + living costs", Deadline: "November", Eligibility: "Exceptional international secondary students", Type: "Merit-based"},
	{ID: "s2", Name: "UBC International Major Entrance Scholarship", Country: CountryCanada, Provider: "UBC",
		Amount: "Up to $40,000 CAD", Deadline: "December", Eligibility: "Outstanding academic achievement", Type: "Entrance"},
	{ID: "s3", Name: "DAAD Study Scholarship", Country: CountryGermany, Provider: "DAAD",
		Amount: "€934/month stipend", Deadline: "October", Eligibility: "Graduates with above-average results", Type: "DAAD"},
	{ID: "s4", Name: "Fulbright Foreign Student Program", Country: CountryUSA, Provider: "US Department of State",
		Amount: "Full funding", Deadline: "Varies by country", Eligibility: "Graduate students with leadership potential", Type: "Merit-based"},
	{ID: "s5", Name: "Eiffel Excellence Scholarship", Country: CountryFrance, Provider: "Campus France",
		Amount: "€1,181/month", Deadline: "January", Eligibility: "Masters and PhD applicants under 30", Type: "Eiffel"},
	{ID: "s6", Name: "DSU Regional Scholarship", Country: CountryItaly, Provider: "Regional DSU offices",
		Amount: "Fee waiver + grant", Deadline: "September", Eligibility: "Income-based, all international students", Type: "DSU"},
}

var destinations = []Destination{
	{ID: "canada", Name: "Canada", Country: CountryCanada,
		VisaNotes:  "Study permit requires an acceptance letter, proof of funds ($20,635 CAD plus tuition), a medical exam and a police certificate.",
		WorkRights: "Post-Graduation Work Permit (PGWP) allows up to 3 years of work after graduation.",
		AvgTuition: "$20,000 - $60,000 CAD/year"},
	{ID: "usa", Name: "USA", Country: CountryUSA,
		VisaNotes:  "F-1 visa requires an I-20 from the school, SEVIS fee payment and a consular interview.",
		WorkRights: "OPT allows 12 months of work, extendable to 36 months for STEM graduates.",
		AvgTuition: "$25,000 - $55,000 USD/year"},
	{ID: "germany", Name: "Germany", Country: CountryGermany,
		VisaNotes:  "National visa requires university admission and a blocked account of €11,208/year.",
		WorkRights: "18-month job-seeker residence permit after graduation.",
		AvgTuition: "Mostly tuition-free at public universities (semester fees only)"},
	{ID: "france", Name: "France", Country: CountryFrance,
		VisaNotes:  "VLS-TS student visa via Campus France with proof of €615/month in funds.",
		WorkRights: "APS permit grants 12-24 months to seek work after a Masters.",
		AvgTuition: "€2,770 - €3,770/year at public universities"},
	{ID: "italy", Name: "Italy", Country: CountryItaly,
		VisaNotes:  "Type D study visa requires pre-enrolment on Universitaly and proof of €467/month.",
		WorkRights: "Permesso di soggiorno convertible to a work permit after graduation.",
		AvgTuition: "€900 - €4,000/year at public universities"},
}

// Universities returns all partner institutions.
func Universities() []University { return universities }

// Programs returns all catalogued programs.
func Programs() []Program { return programs }

// Scholarships returns all catalogued scholarships.
func Scholarships() []Scholarship { return scholarships }

// Destinations returns all destination guides.
func Destinations() []Destination { return destinations }

// UniversityByID looks up a university by id.
func UniversityByID(id string) (University, bool) {
	for _, u := range universities {
		if u.ID == id {
			return u, true
		}
	}
	return University{}, false
}

// ProgramsByCountry returns the programs offered in a country.
func ProgramsByCountry(c Country) []Program {
	var out []Program
	for _, p := range programs {
		if p.Country == c {
			out = append(out, p)
		}
	}
	return out
}

// ScholarshipsByCountry returns the scholarships available in a country.
func ScholarshipsByCountry(c Country) []Scholarship {
	var out []Scholarship
	for _, s := range scholarships {
		if s.Country == c {
			out = append(out, s)
		}
	}
	return out
}

// DestinationByID looks up a destination guide by id ("canada", "usa", ...).
func DestinationByID(id string) (Destination, bool) {
	for _, d := range destinations {
		if d.ID == id {
			return d, true
		}
	}
	return Destination{}, false
}
