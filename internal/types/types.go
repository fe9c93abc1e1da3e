package types

// Candidate is a parsed place that has not been confirmed yet.
// Latitude and Longitude keep the decimal text from the location so no
// precision is lost by reformatting.
type Candidate struct {
	Name      string
	Latitude  string
	Longitude string
	Address   string
	City      string
	State     string
	Country   string
	Rating    string
	Reviews   string
	Category  string

	// PlusCode is only used as input to the legacy locality parser.
	PlusCode string
}

// Locality is the administrative geography resolved for a candidate.
type Locality struct {
	City    string
	State   string
	Country string
}

// Apply copies l onto the candidate's geography fields.
func (c *Candidate) Apply(l Locality) {
	c.City = l.City
	c.State = l.State
	c.Country = l.Country
}
