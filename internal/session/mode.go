package session

// Mode is the input mode of a Session. It decides how each key is
// interpreted.
type Mode int

const (
	// Normal is the idle mode: keys navigate or open the editor.
	Normal Mode = iota
	// Editing routes printable keys into the query buffer.
	Editing
	// SelectPartOfSpeech moves through the parts of speech.
	SelectPartOfSpeech
	// SelectDefinition moves through the definitions of the selected part of
	// speech.
	SelectDefinition
	// Suggesting shows a spelling suggestion after a failed lookup.
	Suggesting
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Editing:
		return "editing"
	case SelectPartOfSpeech:
		return "select-part-of-speech"
	case SelectDefinition:
		return "select-definition"
	case Suggesting:
		return "suggesting"
	default:
		return "unknown"
	}
}
