package form

// Field is one named, independently validated input. Text inputs use Value;
// checkbox-style inputs use Checked. Error holds the message of the first
// failing rule, or "" when the field currently passes.
type Field struct {
	Key     string
	Value   string
	Checked bool
	Touched bool
	Error   string

	// DependsOn names a sibling field whose edits re-trigger this field's
	// validation once it has been touched (confirm-password case).
	DependsOn string

	rules []Rule
}

// TextField declares a text input with its ordered rule pipeline.
func TextField(key string, rules ...Rule) *Field {
	return &Field{Key: key, rules: rules}
}

// BoolField declares a checkbox-style input with its ordered rule pipeline.
func BoolField(key string, rules ...Rule) *Field {
	return &Field{Key: key, rules: rules}
}

// ConfirmField declares a field that must equal the sibling field ref.
func ConfirmField(key, ref, emptyMsg, mismatchMsg string) *Field {
	return &Field{
		Key:       key,
		DependsOn: ref,
		rules:     []Rule{Matches(ref, emptyMsg, mismatchMsg)},
	}
}

// Form is an ordered set of fields plus form-level transient state. The field
// set is fixed at construction; declaration order is validation order, so a
// field must be declared before any field that depends on it.
type Form struct {
	order  []string
	fields map[string]*Field

	Submitting    bool
	BannerError   string
	BannerSuccess string
}

// New builds a form from its field declarations. Keys must be unique.
func New(fields ...*Field) *Form {
	m := &Form{fields: make(map[string]*Field, len(fields))}
	for _, f := range fields {
		m.order = append(m.order, f.Key)
		m.fields[f.Key] = f
	}
	return m
}

// Field returns the field for key, or nil when the form does not declare it.
func (m *Form) Field(key string) *Field {
	return m.fields[key]
}

// Value returns the raw value of a text field, or "" for unknown keys.
func (m *Form) Value(key string) string {
	if f := m.fields[key]; f != nil {
		return f.Value
	}
	return ""
}

// Checked returns the state of a boolean field, or false for unknown keys.
func (m *Form) Checked(key string) bool {
	if f := m.fields[key]; f != nil {
		return f.Checked
	}
	return false
}

// SetValue stores a value without touching or validating the field. Used for
// programmatic prefill (edit mode).
func (m *Form) SetValue(key, value string) {
	if f := m.fields[key]; f != nil {
		f.Value = value
	}
}

// SetChecked stores a boolean value without touching or validating the field.
func (m *Form) SetChecked(key string, checked bool) {
	if f := m.fields[key]; f != nil {
		f.Checked = checked
	}
}

// OnInput records a user edit. The field validates immediately only once it
// has been touched; errors must not appear before first blur. Touched
// dependents of this field always revalidate so stale comparisons never
// survive an edit to their reference.
func (m *Form) OnInput(key, value string) {
	f := m.fields[key]
	if f == nil {
		return
	}
	f.Value = value
	if f.Touched {
		m.validateField(f)
	}
	m.revalidateDependents(key)
}

// OnToggle records a checkbox or selector change. Unlike free-text input, a
// toggle is a completed interaction, so it marks the field touched and
// validates at once.
func (m *Form) OnToggle(key string, checked bool) {
	f := m.fields[key]
	if f == nil {
		return
	}
	f.Checked = checked
	f.Touched = true
	m.validateField(f)
}

// OnSelect records a selector change for text-valued choices (user type,
// category). Same touch-and-validate contract as OnToggle.
func (m *Form) OnSelect(key, value string) {
	f := m.fields[key]
	if f == nil {
		return
	}
	f.Value = value
	f.Touched = true
	m.validateField(f)
}

// OnBlur marks the field touched and validates it and its touched dependents.
func (m *Form) OnBlur(key string) {
	f := m.fields[key]
	if f == nil {
		return
	}
	f.Touched = true
	m.validateField(f)
	m.revalidateDependents(key)
}

// MarkAllTouched sets touched on every field so that all errors become
// visible, including for fields the user never interacted with.
func (m *Form) MarkAllTouched() {
	for _, key := range m.order {
		m.fields[key].Touched = true
	}
}

// Validate runs every field's rule pipeline in declaration order and reports
// whether the whole form passes. It populates each field's Error slot but
// does not mark fields touched; that is the submitter's call.
func (m *Form) Validate() bool {
	ok := true
	for _, key := range m.order {
		if !m.validateField(m.fields[key]) {
			ok = false
		}
	}
	return ok
}

// Errors returns the current non-empty field errors keyed by field.
func (m *Form) Errors() map[string]string {
	out := make(map[string]string)
	for _, key := range m.order {
		if f := m.fields[key]; f.Error != "" {
			out[key] = f.Error
		}
	}
	return out
}

// SetError overwrites a field's error slot, used to surface server-side
// field errors through the same channel as local validation. Unknown keys
// are rejected so dynamic server payloads cannot invent fields.
func (m *Form) SetError(key, msg string) bool {
	f := m.fields[key]
	if f == nil {
		return false
	}
	f.Error = msg
	return true
}

// ClearBanners resets the form-level messages before a new submit attempt.
func (m *Form) ClearBanners() {
	m.BannerError = ""
	m.BannerSuccess = ""
}

func (m *Form) validateField(f *Field) bool {
	for _, rule := range f.rules {
		if msg := rule(f, m); msg != "" {
			f.Error = msg
			return false
		}
	}
	f.Error = ""
	return true
}

func (m *Form) revalidateDependents(key string) {
	for _, k := range m.order {
		f := m.fields[k]
		if f.DependsOn == key && f.Touched {
			m.validateField(f)
		}
	}
}
