package engine

import "encoding/json"

// cardJSON is the wire shape for a Card: its canonical two-codepoint text,
// e.g. "A♣" or "T♦". Rank and suit (and id) are derived on decode, so the
// unexported id field never needs its own JSON representation.
type cardJSON struct {
	Text string `json:"text"`
}

// MarshalJSON renders the card as its canonical text form.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Text: c.ToText()})
}

// UnmarshalJSON parses the canonical text form produced by MarshalJSON.
func (c *Card) UnmarshalJSON(data []byte) error {
	var wire cardJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	card, err := CardFromText(wire.Text)
	if err != nil {
		return err
	}
	*c = card
	return nil
}
