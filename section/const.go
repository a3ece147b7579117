// Package section implements the CTM container: the fixed file header and
// the framing of each tagged section that follows it.
package section

// Section tags: the four-byte ASCII identifier opening each section.
var (
	TagIndex   = [4]byte{'I', 'N', 'D', 'X'}
	TagVertex  = [4]byte{'V', 'E', 'R', 'T'}
	TagNormal  = [4]byte{'N', 'O', 'R', 'M'}
	TagTexMap  = [4]byte{'T', 'E', 'X', 'C'}
	TagAttrMap = [4]byte{'A', 'T', 'T', 'R'}
)

// HeaderSize is the fixed byte size of the file header up to (but not
// including) the variable-length comment string.
const HeaderSize = 32

// MaxCommentLen bounds a header comment string against a hand-crafted file
// claiming an absurd length; real file comments are always far smaller.
const MaxCommentLen = 1 << 20

// MaxNameLen bounds a map name/filename string for the same reason.
const MaxNameLen = 1 << 16
