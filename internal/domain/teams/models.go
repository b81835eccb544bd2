package teams

// Team wraps a contestant name. Two teams are equal when their names are equal.
type Team struct {
	Name string `json:"name"`
}

// New returns a Team with the given name.
func New(name string) Team {
	return Team{Name: name}
}
