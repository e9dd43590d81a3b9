// Package domain contains the core business entities and interfaces.
package domain

// Member is one tracked family member. Members are reference data and are
// never mutated at runtime.
type Member struct {
	Key          string  `json:"key"`
	Name         string  `json:"name"`
	StartWeight  float64 `json:"startWeight"`
	TargetWeight float64 `json:"targetWeight"`
	Goals        string  `json:"goals"`
	Restrictions string  `json:"restrictions"`
	Schedule     string  `json:"schedule"`
	Calories     string  `json:"calories"`
	EatingWindow string  `json:"eatingWindow"`
}

// Roster is the ordered, fixed set of members.
type Roster struct {
	members []Member
	byKey   map[string]int
}

// NewRoster builds a roster from members in display order.
func NewRoster(members ...Member) *Roster {
	r := &Roster{
		members: make([]Member, len(members)),
		byKey:   make(map[string]int, len(members)),
	}
	copy(r.members, members)
	for i, m := range r.members {
		r.byKey[m.Key] = i
	}
	return r
}

// DefaultRoster returns the family roster.
func DefaultRoster() *Roster {
	return NewRoster(
		Member{
			Key:          "ritvik",
			Name:         "Ritvik",
			StartWeight:  89,
			TargetWeight: 81,
			Goals:        "Aggressive fat loss, muscle preservation",
			Restrictions: "No meat/eggs Tue & Sat",
			Schedule:     "Monday, Wednesday, Friday, Saturday",
			Calories:     "1,200-1,400 per day",
			EatingWindow: "1:00 PM - 8:00 PM",
		},
		Member{
			Key:          "lovely",
			Name:         "Lovely (Dad)",
			StartWeight:  104,
			TargetWeight: 95,
			Goals:        "Heart health, cholesterol reduction",
			Restrictions: "No eggs (allergy), vegetarian Tuesdays",
			Schedule:     "Monday, Wednesday, Friday (with Anu)",
			Calories:     "1,400-1,600 per day",
			EatingWindow: "11:00 AM - 8:00 PM",
		},
		Member{
			Key:          "anu",
			Name:         "Anu (Mom)",
			StartWeight:  75,
			TargetWeight: 72,
			Goals:        "Blood sugar control, gut health",
			Restrictions: "Vegetarian Tuesdays, UC-friendly",
			Schedule:     "Monday, Wednesday, Friday (with Lovely)",
			Calories:     "1,300-1,500 per day",
			EatingWindow: "11:00 AM - 8:00 PM",
		},
	)
}

// Get returns the member with the given key.
func (r *Roster) Get(key string) (Member, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Member{}, false
	}
	return r.members[i], true
}

// Has reports whether key names a roster member.
func (r *Roster) Has(key string) bool {
	_, ok := r.byKey[key]
	return ok
}

// Members returns a copy of the roster in display order.
func (r *Roster) Members() []Member {
	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}

// Keys returns member keys in display order.
func (r *Roster) Keys() []string {
	keys := make([]string, len(r.members))
	for i, m := range r.members {
		keys[i] = m.Key
	}
	return keys
}
