package cgfx

import (
	"github.com/wippyai/cgfx/dict"
	"github.com/wippyai/cgfx/pool"
	"github.com/wippyai/cgfx/record"
)

// DefaultMaxFileSize is the largest file the target platform loads.
const DefaultMaxFileSize = 0x80000

// Profile bundles the format quirks that differ between writer variants.
type Profile struct {
	Name        string
	Order       dict.Order
	SectionSize bool
	BlobAlign   int
	Tail        pool.Tail
	BlobBase    record.BlobBase
}

var (
	// ProfileStandard is the default profile.
	ProfileStandard = Profile{
		Name:        "standard",
		Order:       dict.OrderInsertion,
		SectionSize: true,
		BlobAlign:   16,
		Tail:        pool.TailHalfBlock,
		BlobBase:    record.BlobFromPointer,
	}

	// ProfileLegacy reproduces the earlier writer.
	ProfileLegacy = Profile{
		Name:        "legacy",
		Order:       dict.OrderLengthDesc,
		SectionSize: false,
		BlobAlign:   128,
		Tail:        pool.TailWord,
		BlobBase:    record.BlobFromLength,
	}
)

// ProfileByName returns the profile with the given name.
func ProfileByName(name string) (Profile, bool) {
	switch name {
	case ProfileStandard.Name, "":
		return ProfileStandard, true
	case ProfileLegacy.Name:
		return ProfileLegacy, true
	}
	return Profile{}, false
}

// DictOptions returns the dictionary options of the profile.
func (p Profile) DictOptions() []dict.Option {
	return []dict.Option{dict.WithOrder(p.Order), dict.WithSectionSize(p.SectionSize)}
}

func (p Profile) pools() (*pool.Pool, *pool.Pool) {
	strings := pool.New(pool.Text, pool.WithTail(p.Tail))
	blobs := pool.New(pool.Binary, pool.WithBlobAlign(p.BlobAlign), pool.WithTail(p.Tail))
	return strings, blobs
}

// Option configures a File or an Encode call.
type Option func(*config)

type config struct {
	profile     Profile
	pointerBase record.PointerBase
	maxSize     int
}

func defaultConfig() config {
	return config{
		profile: ProfileStandard,
		maxSize: DefaultMaxFileSize,
	}
}

// WithProfile selects the format profile. Passed to Encode, it reconfigures
// the file's dictionaries before layout.
func WithProfile(p Profile) Option {
	return func(c *config) {
		c.profile = p
	}
}

// WithPointerBase sets how record pointers are measured.
func WithPointerBase(b record.PointerBase) Option {
	return func(c *config) {
		c.pointerBase = b
	}
}

// WithMaxFileSize sets the size above which Encode reports an oversize
// error. Zero disables the check.
func WithMaxFileSize(n int) Option {
	return func(c *config) {
		c.maxSize = n
	}
}
