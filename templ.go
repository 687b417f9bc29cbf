package response

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
)

// Render renders a templ component and sends the markup as text/html
// unless a Content-Type is set.
func (res *Response) Render(ctx context.Context, c templ.Component) error {
	if c == nil {
		return fmt.Errorf("%w: nil component", ErrInvalidArgument)
	}
	if err := res.checkMutable("render"); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return fmt.Errorf("render component: %w", err)
	}
	return res.SendString(buf.String())
}
