package client

import (
	"context"
	"errors"
	"sync"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// Banner messages shown when a catalog action fails.
const (
	MsgLoadFailed   = "Failed to load tools. Please try again."
	MsgCreateFailed = "Failed to add tool. Please try again."
	MsgUpdateFailed = "Failed to update tool. Please try again."
	MsgDeleteFailed = "Failed to delete tool. Please try again."
)

// ErrNotConfirmed is returned by Delete when the caller has not confirmed.
var ErrNotConfirmed = errors.New("delete not confirmed")

// Service is the subset of API the Catalog needs.
type Service interface {
	ListTools(ctx context.Context, f domain.Filter) ([]domain.Tool, error)
	GetTool(ctx context.Context, id string) (domain.Tool, error)
	CreateTool(ctx context.Context, in domain.CreateInput) (domain.Tool, error)
	UpdateTool(ctx context.Context, id string, patch domain.Patch) (domain.Tool, error)
	DeleteTool(ctx context.Context, id string) error
}

// View is the screen the catalog is showing.
type View int

const (
	ViewListing View = iota
	ViewDetail
)

// DetailStatus is the state of the detail view.
type DetailStatus int

const (
	DetailLoading DetailStatus = iota
	DetailLoaded
	DetailNotFound
	DetailFailed
)

func (s DetailStatus) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailNotFound:
		return "not-found"
	case DetailFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Detail is a snapshot of the detail view.
type Detail struct {
	ID     string
	Status DetailStatus
	Tool   domain.Tool
}

// Catalog holds the client-side state of the listing and detail views and
// reconciles it with server responses. It is safe for concurrent use.
type Catalog struct {
	svc Service

	mu       sync.Mutex
	tools    []domain.Tool
	filter   domain.Filter
	loaded   bool
	inflight int // loads started and not yet returned
	errMsg   string
	formOpen bool
	view     View
	detail   Detail
	gen      uint64 // bumped on every OpenDetail; older responses are dropped
}

func NewCatalog(svc Service) *Catalog {
	return &Catalog{svc: svc, tools: []domain.Tool{}}
}

// Tools returns a copy of the held records.
func (c *Catalog) Tools() []domain.Tool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CloneAll(c.tools)
}

// Filter returns the filter of the last successful load.
func (c *Catalog) Filter() domain.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Loading is true only while a load is in flight and nothing is held yet.
func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0 && len(c.tools) == 0
}

// Error returns the current banner message, or "".
func (c *Catalog) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// DismissError clears the banner.
func (c *Catalog) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
}

func (c *Catalog) FormOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formOpen
}

func (c *Catalog) OpenForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formOpen = true
}

func (c *Catalog) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formOpen = false
}

func (c *Catalog) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Catalog) Detail() Detail {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.detail
	d.Tool = d.Tool.Clone()
	return d
}

// Load fetches the records matching f. On failure the previous records are
// kept and the load banner is set.
func (c *Catalog) Load(ctx context.Context, f domain.Filter) error {
	c.mu.Lock()
	c.errMsg = ""
	c.inflight++
	c.mu.Unlock()

	tools, err := c.svc.ListTools(ctx, f)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if err != nil {
		c.errMsg = MsgLoadFailed
		return err
	}
	c.tools = tools
	c.filter = f
	c.loaded = true
	return nil
}

// SetFilter reloads only when f differs from the current selection or nothing
// has been loaded yet.
func (c *Catalog) SetFilter(ctx context.Context, f domain.Filter) error {
	c.mu.Lock()
	same := c.loaded && c.filter == f
	c.mu.Unlock()
	if same {
		return nil
	}
	return c.Load(ctx, f)
}

// Create validates form and submits it. On success the returned record is
// put first and the form is closed; on failure the form stays open.
func (c *Catalog) Create(ctx context.Context, form Form) (domain.Tool, error) {
	if err := form.Validate(); err != nil {
		return domain.Tool{}, err
	}

	tool, err := c.svc.CreateTool(ctx, form.CreateInput())

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.errMsg = MsgCreateFailed
		return domain.Tool{}, err
	}
	c.tools = append([]domain.Tool{tool.Clone()}, c.tools...)
	c.formOpen = false
	c.errMsg = ""
	return tool, nil
}

// Edit submits form as a full update of id and replaces the held record.
func (c *Catalog) Edit(ctx context.Context, id string, form Form) (domain.Tool, error) {
	if err := form.Validate(); err != nil {
		return domain.Tool{}, err
	}
	return c.update(ctx, id, form.Patch())
}

// Update applies a partial update of id. Only the fields patch sets are
// checked and sent; the held record is replaced on success.
func (c *Catalog) Update(ctx context.Context, id string, patch domain.Patch) (domain.Tool, error) {
	if err := ValidatePatch(patch); err != nil {
		return domain.Tool{}, err
	}
	return c.update(ctx, id, NormalizePatch(patch))
}

func (c *Catalog) update(ctx context.Context, id string, patch domain.Patch) (domain.Tool, error) {
	tool, err := c.svc.UpdateTool(ctx, id, patch)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.errMsg = MsgUpdateFailed
		return domain.Tool{}, err
	}
	if idx := domain.IndexOf(c.tools, id); idx != -1 {
		c.tools[idx] = tool.Clone()
	}
	if c.detail.ID == id && c.detail.Status == DetailLoaded {
		c.detail.Tool = tool.Clone()
	}
	c.formOpen = false
	c.errMsg = ""
	return tool, nil
}

// Delete removes id after explicit confirmation. Deleting the record shown in
// the detail view navigates back to the listing.
func (c *Catalog) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	err := c.svc.DeleteTool(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.errMsg = MsgDeleteFailed
		return err
	}
	if idx := domain.IndexOf(c.tools, id); idx != -1 {
		c.tools = append(c.tools[:idx:idx], c.tools[idx+1:]...)
	}
	if c.view == ViewDetail && c.detail.ID == id {
		c.view = ViewListing
		c.detail = Detail{}
	}
	c.errMsg = ""
	return nil
}

// OpenDetail switches to the detail view of id and fetches it. If another
// OpenDetail starts before this one returns, this response is discarded and
// the newer state is returned instead.
func (c *Catalog) OpenDetail(ctx context.Context, id string) Detail {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.view = ViewDetail
	c.detail = Detail{ID: id, Status: DetailLoading}
	c.mu.Unlock()

	tool, err := c.svc.GetTool(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return c.detail
	}
	switch {
	case err == nil:
		c.detail = Detail{ID: id, Status: DetailLoaded, Tool: tool}
	case errors.Is(err, ErrNotFound):
		c.detail = Detail{ID: id, Status: DetailNotFound}
	default:
		c.detail = Detail{ID: id, Status: DetailFailed}
		c.errMsg = MsgLoadFailed
	}
	return c.detail
}

// CloseDetail returns to the listing and drops any in-flight detail response.
func (c *Catalog) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.view = ViewListing
	c.detail = Detail{}
}
