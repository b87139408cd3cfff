package homework

import "fmt"

// StatusCode is a review status reported by the API.
type StatusCode string

const (
	StatusApproved  StatusCode = "approved"
	StatusReviewing StatusCode = "reviewing"
	StatusRejected  StatusCode = "rejected"
)

// VerdictTable maps every recognized status code to its display text.
var VerdictTable = map[StatusCode]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the display text for code.
func Verdict(code StatusCode) (string, bool) {
	v, ok := VerdictTable[code]
	return v, ok
}

// Status is the interpreted state of one homework. It is rebuilt every cycle.
type Status struct {
	Name    string
	Code    StatusCode
	Verdict string
}

// Message renders the notification text for s.
func (s Status) Message() string {
	return fmt.Sprintf(`Changed review status of "%s". %s`, s.Name, s.Verdict)
}
