package stages

const nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RenameContext holds the identifier mapping of one pipeline run. Every
// stage of the run, and every inline script of one HTML file, sees the same
// context, so a name is renamed the same way everywhere.
type RenameContext struct {
	counter int
	names   map[string]string
	order   []string
	taken   map[string]bool
}

// NewRenameContext returns an empty context.
func NewRenameContext() *RenameContext {
	return &RenameContext{
		names: map[string]string{},
		taken: map[string]bool{},
	}
}

// Reserve marks names that generated names must not collide with.
func (rc *RenameContext) Reserve(names ...string) {
	for _, n := range names {
		rc.taken[n] = true
	}
}

// Assign returns the synthetic name for original, allocating the next free
// one on first use.
func (rc *RenameContext) Assign(original string) string {
	if short, ok := rc.names[original]; ok {
		return short
	}

	var short string

	for {
		rc.counter++

		short = syntheticName(rc.counter)
		if !rc.taken[short] {
			break
		}
	}

	rc.taken[short] = true
	rc.names[original] = short
	rc.order = append(rc.order, original)

	return short
}

// Lookup returns the synthetic name already assigned to original.
func (rc *RenameContext) Lookup(original string) (string, bool) {
	short, ok := rc.names[original]

	return short, ok
}

// Len returns the number of renamed identifiers.
func (rc *RenameContext) Len() int {
	return len(rc.names)
}

// Originals returns the renamed identifiers in allocation order.
func (rc *RenameContext) Originals() []string {
	return append([]string(nil), rc.order...)
}

// syntheticName maps n >= 1 to "_" plus n in bijective base 52:
// 1 is "_a", 52 is "_Z", 53 is "_aa".
func syntheticName(n int) string {
	var buf []byte

	for n > 0 {
		n--
		buf = append(buf, nameAlphabet[n%len(nameAlphabet)])
		n /= len(nameAlphabet)
	}

	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return "_" + string(buf)
}
