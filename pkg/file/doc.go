// Package file provides byte sources for streaming stored files into HTTP
// responses.
//
// A Source answers two questions about a path: does it exist (Stat) and what
// are its bytes (Open). Two implementations are included:
//
//   - Local serves files from a directory on disk. Every path is resolved
//     inside the base directory, so "../" sequences cannot escape it.
//   - S3 serves objects from an Amazon S3 (or S3-compatible) bucket using
//     HeadObject and GetObject.
//
// # Usage
//
//	import "github.com/dmitrymomot/response/pkg/file"
//
//	src, err := file.NewLocal("./public")
//	if err != nil {
//	    return err
//	}
//	info, err := src.Stat(ctx, "docs/guide.pdf")
//	if errors.Is(err, file.ErrFileNotFound) {
//	    // 404
//	}
//
// S3 backed sources take the same shape:
//
//	src, err := file.NewS3(ctx, file.S3Config{
//	    Bucket: "assets",
//	    Region: "eu-central-1",
//	})
//
// For tests, inject a mock client with WithS3Client.
//
// # Error Handling
//
// Missing objects are reported as ErrFileNotFound, directories as
// ErrIsDirectory and escapes from the base directory as ErrInvalidPath. S3
// service errors are classified into ErrAccessDenied, ErrBucketNotFound,
// ErrServiceUnavailable and friends.
package file
