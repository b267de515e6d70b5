package raidhelper

import (
	"encoding/json"
	"sort"
	"strings"
)

// fallbackPosition places signups without a position after every positioned one.
const fallbackPosition = 1_000_000_000

// Event is the subset of a Raid-Helper event payload used to list participants.
// Only the fields the listing reads are typed; everything else in the payload is ignored.
type Event struct {
	ID      json.RawMessage `json:"id"`
	SignUps []SignUp        `json:"signUps"`
}

// EventID returns the event's id as text, whether it was sent as a string or a number.
func (e *Event) EventID() string {
	return strings.Trim(string(e.ID), `"`)
}

// SignUp is a single participant's signup.
type SignUp struct {
	Name      string      `json:"name"`
	ClassName string      `json:"className"`
	Position  json.Number `json:"position"`
	EntryTime json.Number `json:"entryTime"`
}

// DisplayName returns the participant's name or "Unknown".
func (s SignUp) DisplayName() string {
	if s.Name == "" {
		return "Unknown"
	}
	return s.Name
}

// Class returns the signup's class or "unknown".
func (s SignUp) Class() string {
	if s.ClassName == "" {
		return "unknown"
	}
	return s.ClassName
}

func (s SignUp) order() float64 {
	p, err := s.Position.Float64()
	if err != nil {
		return fallbackPosition
	}
	return p
}

func (s SignUp) entryTime() float64 {
	t, _ := s.EntryTime.Float64()
	return t
}

// SortBySignupOrder returns a copy of signUps ordered by position, then entry time.
// Signups sharing both keys keep their upstream order.
func SortBySignupOrder(signUps []SignUp) []SignUp {
	sorted := make([]SignUp, len(signUps))
	copy(sorted, signUps)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].order() != sorted[j].order() {
			return sorted[i].order() < sorted[j].order()
		}
		return sorted[i].entryTime() < sorted[j].entryTime()
	})
	return sorted
}

// FormatParticipants renders one "name<TAB>class" line per signup in signup order.
func FormatParticipants(signUps []SignUp) string {
	lines := make([]string, 0, len(signUps))
	for _, s := range SortBySignupOrder(signUps) {
		lines = append(lines, s.DisplayName()+"\t"+s.Class())
	}
	return strings.Join(lines, "\n")
}

// FilterByStatus keeps the signups whose class matches one of wanted, case-insensitively.
// All signups are returned when wanted is empty.
func FilterByStatus(signUps []SignUp, wanted []string) []SignUp {
	if len(wanted) == 0 {
		return signUps
	}

	set := make(map[string]struct{}, len(wanted))
	for _, w := range wanted {
		set[strings.ToLower(w)] = struct{}{}
	}

	filtered := make([]SignUp, 0, len(signUps))
	for _, s := range signUps {
		if _, ok := set[strings.ToLower(s.Class())]; ok {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Categorize groups participant names by lower-cased class.
func Categorize(signUps []SignUp) map[string][]string {
	categories := map[string][]string{}
	for _, s := range signUps {
		status := strings.ToLower(s.Class())
		categories[status] = append(categories[status], s.DisplayName())
	}
	return categories
}

// Categories returns the category names in alphabetical order.
func Categories(categories map[string][]string) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilterNames returns the alphabetically sorted names of the wanted categories.
// Unknown categories are ignored and an empty wanted selects every category.
func FilterNames(categories map[string][]string, wanted []string) []string {
	var names []string
	if len(wanted) == 0 {
		for _, n := range categories {
			names = append(names, n...)
		}
	} else {
		seen := map[string]struct{}{}
		for _, w := range wanted {
			w = strings.ToLower(w)
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			names = append(names, categories[w]...)
		}
	}
	sort.Strings(names)
	return names
}

// ParseStatuses splits a space or comma separated status list into lower-cased statuses.
func ParseStatuses(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	statuses := make([]string, 0, len(fields))
	for _, f := range fields {
		statuses = append(statuses, strings.ToLower(f))
	}
	return statuses
}
