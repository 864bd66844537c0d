package gui

// Option configures one widget call.
type Option func(*options)

type options struct {
	values map[string]any
}

// OptKey is a typed option key with a default. Widgets outside this package
// can declare their own:
//
//	var OptAccent = gui.NewOptKey("accent", gui.ColorYellow)
//
//	ctx.Swatch("fill", gui.WithOpt(OptAccent, gui.ColorRed))
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey declares a key.
func NewOptKey[T any](name string, def T) OptKey[T] {
	return OptKey[T]{name: name, def: def}
}

// Name returns the key name.
func (k OptKey[T]) Name() string { return k.name }

// Default returns the value GetOpt reports when the key is not set.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets key to value.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.values == nil {
			o.values = make(map[string]any, 4)
		}
		o.values[key.name] = value
	}
}

// GetOpt reads key, falling back to its default when unset or mistyped.
func GetOpt[T any](o options, key OptKey[T]) T {
	if v, ok := o.values[key.name].(T); ok {
		return v
	}
	return key.def
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var (
	OptID          = NewOptKey("id", "")
	OptDisabled    = NewOptKey("disabled", false)
	OptWidth       = NewOptKey[float32]("width", 0)
	OptHeight      = NewOptKey[float32]("height", 0)
	OptForceFocus  = NewOptKey("forceFocus", false) // Text field enters edit mode this frame
	OptPlaceholder = NewOptKey("placeholder", "")
	OptMixed       = NewOptKey("mixed", false) // Checkbox shows the indeterminate mark
)

// WithID keys the widget's state by id instead of its label and call order.
func WithID(id string) Option { return WithOpt(OptID, id) }

// WithDisabled greys the widget out and ignores clicks.
func WithDisabled(disabled bool) Option { return WithOpt(OptDisabled, disabled) }

// WithWidth fixes the widget width.
func WithWidth(w float32) Option { return WithOpt(OptWidth, w) }

// WithHeight fixes the widget height.
func WithHeight(h float32) Option { return WithOpt(OptHeight, h) }

// ForceFocus opens a text field for editing on this frame.
func ForceFocus() Option { return WithOpt(OptForceFocus, true) }

// WithPlaceholder sets the hint an empty text field shows.
func WithPlaceholder(text string) Option { return WithOpt(OptPlaceholder, text) }

// WithIndeterminate draws a checkbox in the mixed state.
func WithIndeterminate() Option { return WithOpt(OptMixed, true) }
