package response

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/response/pkg/disposition"
	"github.com/dmitrymomot/response/pkg/file"
	"github.com/dmitrymomot/response/pkg/logger"
)

const streamChunkSize = 32 << 10

// FileOption configures SendFile and Download.
type FileOption func(*fileOptions)

type fileOptions struct {
	onError func(error)
}

// OnError routes delivery failures to fn. SendFile then returns nil.
func OnError(fn func(error)) FileOption {
	return func(o *fileOptions) { o.onError = fn }
}

// SendFile streams a file from the configured source. Content-Type comes
// from the extension and Content-Length from the file size. Missing files
// and directories yield ErrNotFound.
func (res *Response) SendFile(ctx context.Context, path string, opts ...FileOption) error {
	return res.deliver(ctx, path, "", opts)
}

// Download is SendFile with an attachment disposition. An empty filename
// uses the base name of path. The disposition is only set once the file is
// known to exist, so an error page sent afterwards is not saved as the file.
func (res *Response) Download(ctx context.Context, path, filename string, opts ...FileOption) error {
	if filename == "" {
		filename = path
	}
	return res.deliver(ctx, path, disposition.Attachment(filename), opts)
}

func (res *Response) deliver(ctx context.Context, path, disp string, opts []FileOption) error {
	var o fileOptions
	for _, opt := range opts {
		opt(&o)
	}

	err := res.sendFile(ctx, path, disp)
	if err != nil && o.onError != nil {
		o.onError(err)
		return nil
	}
	return err
}

func (res *Response) sendFile(ctx context.Context, path, disp string) error {
	if err := res.checkMutable("send file"); err != nil {
		return err
	}
	src, err := res.files()
	if err != nil {
		return errors.Join(ErrUnsupportedConfiguration, err)
	}

	info, err := src.Stat(ctx, path)
	if err != nil {
		return classifyFileError(err)
	}

	// Fields set here are rolled back when the file cannot be opened.
	var added []string
	if disp != "" {
		if err := res.Set("Content-Disposition", disp); err != nil {
			return err
		}
		added = append(added, "Content-Disposition")
	}
	typ := info.MIMEType
	if typ == "" {
		typ = res.typeFor(path)
	}
	if !res.sink.HasHeader("Content-Type") {
		cs := ""
		if isTextual(typ) {
			cs = res.cfg.Charset
		}
		if err := res.TypeCharset(typ, cs); err != nil {
			res.rollback(added)
			return err
		}
		added = append(added, "Content-Type")
	}
	res.sink.SetHeader("Content-Length", []string{strconv.FormatInt(info.Size, 10)})
	added = append(added, "Content-Length")

	if res.bodyless() {
		return res.seal(nil)
	}

	rc, _, err := src.Open(ctx, path)
	if err != nil {
		res.rollback(added)
		return classifyFileError(err)
	}
	defer func() { _ = rc.Close() }()

	return res.stream(ctx, rc, path)
}

func (res *Response) rollback(fields []string) {
	for _, name := range fields {
		res.sink.RemoveHeader(name)
	}
}

// Stream pipes r to the client without a Content-Length.
func (res *Response) Stream(ctx context.Context, r io.Reader) error {
	if r == nil {
		return fmt.Errorf("%w: nil reader", ErrInvalidArgument)
	}
	if err := res.checkMutable("stream"); err != nil {
		return err
	}
	res.sink.RemoveHeader("Content-Length")
	if res.bodyless() {
		return res.seal(nil)
	}
	return res.stream(ctx, r, "")
}

// bodyless reports whether status or method forbid a body.
func (res *Response) bodyless() bool {
	switch res.StatusCode() {
	case http.StatusNoContent, http.StatusNotModified, http.StatusResetContent:
		return true
	}
	return res.isHead()
}

// stream copies r to the sink chunk by chunk. Copying stops without error
// when the peer goes away. Failures after headers went out abort the sink.
func (res *Response) stream(ctx context.Context, r io.Reader, path string) error {
	buf := make([]byte, streamChunkSize)
	done := res.sink.Done()

	for {
		select {
		case <-done:
			res.log.Debug("peer gone, stream stopped", logger.Path(path))
			res.sink.Abort(nil)
			return nil
		default:
		}
		if err := ctx.Err(); err != nil {
			return res.streamFailed(err, path)
		}

		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := res.sink.Write(buf[:n]); werr != nil {
				return res.streamFailed(werr, path)
			}
		}
		if rerr == io.EOF {
			return res.sink.End(nil)
		}
		if rerr != nil {
			return res.streamFailed(rerr, path)
		}
	}
}

func (res *Response) streamFailed(err error, path string) error {
	if !res.sink.HeadersSent() {
		return errors.Join(ErrStreamFailure, err)
	}
	res.log.Error("stream failed", logger.Path(path), logger.Error(err))
	res.sink.Abort(err)
	return errors.Join(ErrStreamFailure, err)
}

func classifyFileError(err error) error {
	switch {
	case errors.Is(err, file.ErrFileNotFound),
		errors.Is(err, file.ErrIsDirectory),
		errors.Is(err, file.ErrInvalidPath):
		return errors.Join(ErrNotFound, err)
	}
	return err
}
