package object

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/Suhaibk137/atsclaude/internal/shared/util"
)

// Store saves and retrieves binary objects by key.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// ArchiveKey builds the key a converted document is archived under:
// converted/<yyyy>/<mm>/<id>_<stem>_converted.docx.
func ArchiveKey(id, fileName string, at time.Time) string {
	at = at.UTC()
	name := strings.ReplaceAll(util.ConvertedFileName(fileName), " ", "_")
	return path.Join(
		"converted",
		fmt.Sprintf("%04d", at.Year()),
		fmt.Sprintf("%02d", int(at.Month())),
		id+"_"+name,
	)
}
