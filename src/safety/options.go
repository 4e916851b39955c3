package safety

// Options capture the global flags that gate destructive actions.
type Options struct {
	// DryRun reports planned actions without performing any; prompts are
	// skipped and treated as declined.
	DryRun bool
	// Yes answers every prompt affirmatively without reading input.
	Yes bool
}
