package link

import (
	"context"
	"errors"

	"github.com/goliatone/go-docform/pkg/docstore"
	"github.com/goliatone/go-docform/pkg/schema"
)

// DynamicOption configures a DynamicResolver.
type DynamicOption func(*DynamicResolver)

// WithDocTypeFallback sets the document types offered when the live listing
// is unavailable. Without it the picker is empty on listing failure.
func WithDocTypeFallback(doctypes []string) DynamicOption {
	return func(d *DynamicResolver) {
		d.fallback = append([]string(nil), doctypes...)
	}
}

// WithResolverOptions forwards options to the per-doctype resolvers the
// dynamic resolver builds.
func WithResolverOptions(opts ...ResolverOption) DynamicOption {
	return func(d *DynamicResolver) { d.resolverOpts = opts }
}

// DynamicResolver backs a dynamic reference: the user first picks which
// document type the field points at, then searches records of that type.
// Choosing a different document type clears the current value, so the field
// can never hold a record of the wrong type.
type DynamicResolver struct {
	source       schema.Source
	transport    docstore.Transport
	fallback     []string
	resolverOpts []ResolverOption

	doctype  string
	resolver *Resolver
}

// NewDynamicResolver builds an unselected dynamic resolver.
func NewDynamicResolver(source schema.Source, transport docstore.Transport, opts ...DynamicOption) (*DynamicResolver, error) {
	if source == nil {
		return nil, errors.New("link: schema source is required")
	}
	if transport == nil {
		return nil, errors.New("link: transport is required")
	}

	d := &DynamicResolver{source: source, transport: transport}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// DocTypes lists the document types offered by the picker. When the live
// listing fails or comes back empty the fallback list is served with a nil
// error, so the picker stays usable offline.
func (d *DynamicResolver) DocTypes(ctx context.Context) ([]string, error) {
	doctypes, err := d.source.DocTypes(ctx)
	if err != nil || len(doctypes) == 0 {
		return append([]string(nil), d.fallback...), nil
	}
	return doctypes, nil
}

// DocType returns the currently selected document type, empty when unset.
func (d *DynamicResolver) DocType() string { return d.doctype }

// SetDocType selects the referenced document type and reports whether the
// bound value must be cleared. Re-selecting the current type is a no-op.
func (d *DynamicResolver) SetDocType(doctype string) (cleared bool, err error) {
	if doctype == d.doctype {
		return false, nil
	}

	var resolver *Resolver
	if doctype != "" {
		resolver, err = NewResolver(d.transport, doctype, d.resolverOpts...)
		if err != nil {
			return false, err
		}
	}

	if d.resolver != nil {
		d.resolver.CancelPending()
	}
	hadSelection := d.doctype != ""
	d.doctype = doctype
	d.resolver = resolver
	return hadSelection, nil
}

// Search delegates to the resolver for the selected document type. Before a
// type is chosen the callback receives ErrNoDocType wrapped in a
// *ReferenceResolutionError.
func (d *DynamicResolver) Search(ctx context.Context, query string, deliver func([]Option, error)) {
	if d.resolver == nil {
		deliver(nil, &ReferenceResolutionError{Err: ErrNoDocType})
		return
	}
	d.resolver.Search(ctx, query, deliver)
}

// SelectedOption delegates to the resolver for the selected document type.
func (d *DynamicResolver) SelectedOption(ctx context.Context, value string) (Option, error) {
	if d.resolver == nil {
		return Option{}, &ReferenceResolutionError{Err: ErrNoDocType}
	}
	return d.resolver.SelectedOption(ctx, value)
}
