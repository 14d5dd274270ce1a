package table

import (
	"sort"

	"github.com/rs/zerolog"

	"pokerd/internal/protocol"
	"pokerd/pkg/types"
)

// Registry owns the fixed roster of table rooms for one process, keyed by
// table id. internal/server holds one Registry under its tables lock.
type Registry struct {
	rooms map[string]*TableRoom
	order []string
}

// NewRegistry builds one TableRoom per entry in cfgs, in tables.toml's
// declared display order.
func NewRegistry(cfgs []types.TableConfig, log zerolog.Logger) *Registry {
	sort.Slice(cfgs, func(i, j int) bool { return cfgs[i].Order < cfgs[j].Order })
	reg := &Registry{rooms: make(map[string]*TableRoom, len(cfgs))}
	for _, cfg := range cfgs {
		reg.rooms[cfg.ID] = NewTableRoom(cfg, log)
		reg.order = append(reg.order, cfg.ID)
	}
	return reg
}

func (reg *Registry) Get(id string) (*TableRoom, bool) {
	r, ok := reg.rooms[id]
	return r, ok
}

// CleanupFinished runs lazily on list_tables and join_table per spec.md
// §4.4: any room whose ActiveGame has finished resets to Waiting. Returns
// true if anything changed, so the caller knows to broadcast fresh lobby
// state.
func (reg *Registry) CleanupFinished() bool {
	changed := false
	for _, id := range reg.order {
		r := reg.rooms[id]
		if r.Status == StatusInProgress && r.Active != nil && r.Active.Finished() {
			r.Reset()
			changed = true
		}
	}
	return changed
}

// List returns every room's TableInfo in display order, after running
// CleanupFinished.
func (reg *Registry) List() []protocol.TableInfo {
	reg.CleanupFinished()
	out := make([]protocol.TableInfo, 0, len(reg.order))
	for _, id := range reg.order {
		out = append(out, reg.rooms[id].Info())
	}
	return out
}
