package popupctl

// Type names a popup slot. Later slots draw over earlier ones and take the
// keyboard first.
type Type int

const (
	None Type = iota
	TextInput
	Confirm
	Help
	Error
	slotCount
)

// InputMode says what the text input popup is collecting.
type InputMode int

const (
	InputNone InputMode = iota
	InputTitle
	InputDescription
	InputImportDir
)
