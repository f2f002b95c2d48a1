package booking

// Fields is the slot-filling record a conversation accumulates. String
// slots use "" for absent; the pointer slots distinguish "never
// mentioned" (nil) from an explicit answer, including an explicit "no
// notes" stored as a pointer to "".
type Fields struct {
	Name       string  `json:"name,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Email      string  `json:"email,omitempty"`
	Pickup     string  `json:"pickup,omitempty"`
	Dropoff    string  `json:"dropoff,omitempty"`
	Date       string  `json:"date,omitempty"`
	Time       string  `json:"time,omitempty"`
	Passengers *int    `json:"passengers,omitempty"`
	Luggage    *bool   `json:"luggage,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	// DateNote carries the one-turn confirmation line produced when a
	// fuzzy date was silently normalized. Never persisted.
	DateNote string `json:"-"`

	// EscalationNote flags a submission the operator should eyeball, for
	// example a drop-off that looked out of province. Never sent back to
	// the customer.
	EscalationNote string `json:"-"`
}

// requiredOrder fixes the order missing fields are reported and asked in.
var requiredOrder = []string{
	"name", "phone", "email", "pickup", "dropoff", "date", "time", "passengers", "luggage",
}

// Merge overlays salvage-extracted values onto the model extraction.
// The model value wins whenever it is present; a salvage pointer wins
// over nil even when it points at an empty string, so an explicit "no
// notes" answer survives the merge.
func Merge(model, salvage Fields) Fields {
	out := model
	if out.Name == "" {
		out.Name = salvage.Name
	}
	if out.Phone == "" {
		out.Phone = salvage.Phone
	}
	if out.Email == "" {
		out.Email = salvage.Email
	}
	if out.Pickup == "" {
		out.Pickup = salvage.Pickup
	}
	if out.Dropoff == "" {
		out.Dropoff = salvage.Dropoff
	}
	if out.Date == "" {
		out.Date = salvage.Date
	}
	if out.Time == "" {
		out.Time = salvage.Time
	}
	if out.Passengers == nil {
		out.Passengers = salvage.Passengers
	}
	if out.Luggage == nil {
		out.Luggage = salvage.Luggage
	}
	if out.Notes == nil {
		out.Notes = salvage.Notes
	}
	return out
}

// MissingFields lists the unfilled required slots in asking order.
// Notes are optional and never reported.
func (f Fields) MissingFields() []string {
	var missing []string
	for _, name := range requiredOrder {
		if !f.has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// MissingFormFields lists the unfilled slots the /book form requires.
// The form does not collect luggage; that question belongs to chat.
func (f Fields) MissingFormFields() []string {
	var missing []string
	for _, name := range requiredOrder {
		if name == "luggage" {
			continue
		}
		if !f.has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// NextMissing returns the first unfilled required slot, or "".
func (f Fields) NextMissing() string {
	for _, name := range requiredOrder {
		if !f.has(name) {
			return name
		}
	}
	return ""
}

// Complete reports whether every required slot is filled.
func (f Fields) Complete() bool {
	return f.NextMissing() == ""
}

func (f Fields) has(name string) bool {
	switch name {
	case "name":
		return f.Name != ""
	case "phone":
		return f.Phone != ""
	case "email":
		return f.Email != ""
	case "pickup":
		return f.Pickup != ""
	case "dropoff":
		return f.Dropoff != ""
	case "date":
		return f.Date != ""
	case "time":
		return f.Time != ""
	case "passengers":
		return f.Passengers != nil
	case "luggage":
		return f.Luggage != nil
	default:
		return true
	}
}
