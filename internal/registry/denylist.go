package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/feral-file/token-tracker/internal/adapter"
)

// CreatorDenylist defines the interface for looking up known rug creators
//
//go:generate mockgen -source=denylist.go -destination=../mocks/creator_denylist.go -package=mocks -mock_names=CreatorDenylist=MockCreatorDenylist
type CreatorDenylist interface {
	// IsDenied checks if a creator wallet is on the denylist
	IsDenied(creator string) bool

	// Len returns the number of denied creators
	Len() int
}

// DenylistData represents the structure of the denylist.json file
type DenylistData struct {
	Creators []string `json:"creators"`
}

// creatorDenylist is the internal implementation of CreatorDenylist.
// Solana addresses are case sensitive, so lookups are exact.
type creatorDenylist struct {
	creators map[string]struct{}
}

// DenylistLoader loads creator denylists from disk
type DenylistLoader struct {
	fs adapter.FileSystem
}

// NewDenylistLoader creates a loader reading through fs
func NewDenylistLoader(fs adapter.FileSystem) *DenylistLoader {
	return &DenylistLoader{fs: fs}
}

// Load reads and indexes the denylist file
func (l *DenylistLoader) Load(filePath string) (CreatorDenylist, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read denylist file: %w", err)
	}

	var denylistData DenylistData
	if err := json.Unmarshal(data, &denylistData); err != nil {
		return nil, fmt.Errorf("failed to parse denylist JSON: %w", err)
	}

	return NewCreatorDenylist(denylistData.Creators), nil
}

// NewCreatorDenylist builds a denylist from creator addresses; blank entries are skipped
func NewCreatorDenylist(creators []string) CreatorDenylist {
	dl := &creatorDenylist{creators: make(map[string]struct{}, len(creators))}
	for _, creator := range creators {
		creator = strings.TrimSpace(creator)
		if creator == "" {
			continue
		}
		dl.creators[creator] = struct{}{}
	}
	return dl
}

// IsDenied checks if a creator wallet is on the denylist
func (d *creatorDenylist) IsDenied(creator string) bool {
	if d == nil {
		return false
	}
	_, ok := d.creators[strings.TrimSpace(creator)]
	return ok
}

// Len returns the number of denied creators
func (d *creatorDenylist) Len() int {
	if d == nil {
		return 0
	}
	return len(d.creators)
}
