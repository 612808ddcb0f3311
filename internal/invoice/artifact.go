package invoice

import (
	"errors"
	"io/fs"
	"os"

	"github.com/google/uuid"
)

// Artifact is one rendered invoice file on disk. It is owned exclusively by
// the request that created it: the handler that obtains an Artifact is
// responsible for calling Remove once the delivery attempt has finished,
// whatever the outcome.
type Artifact struct {
	// ID makes the artifact unique across concurrent requests. Filenames
	// embed it, so two orders arriving in the same nanosecond still get
	// distinct files.
	ID uuid.UUID

	// Path is the absolute location of the file in the spool directory.
	Path string

	// Filename is the name the attachment carries in the outgoing email.
	Filename string
}

// Bytes reads the rendered document back for attaching to the email.
// Render has fully flushed and closed the file before the Artifact is
// returned, so this never observes a partial write.
func (a *Artifact) Bytes() ([]byte, error) {
	return os.ReadFile(a.Path)
}

// Remove deletes the file. It is idempotent — removing an artifact that is
// already gone is not an error, so deferred cleanup and explicit cleanup can
// coexist safely.
func (a *Artifact) Remove() error {
	err := os.Remove(a.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
