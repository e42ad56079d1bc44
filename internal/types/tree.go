package types

// TreeItem is the displayable form of a Package handed to the host UI.
type TreeItem struct {
	Label            string           `json:"label"`
	Description      string           `json:"description"`
	Tooltip          string           `json:"tooltip"`
	CollapsibleState CollapsibleState `json:"collapsible_state"`
	ContextValue     string           `json:"context_value"`
	ResourcePath     string           `json:"resource_path"`
}
