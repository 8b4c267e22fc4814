package sharing

import (
	"context"
	"fmt"
	"io"

	apperrors "github.com/savaki/deltashare-deployer/internal/errors"
)

// DownloadCSV queries a table, fetches every data file it references, and
// writes the combined rows to w as CSV.
func (c *Client) DownloadCSV(ctx context.Context, share, schema, table string, w io.Writer) error {
	dataFiles, err := c.QueryTable(ctx, share, schema, table)
	if err != nil {
		return err
	}
	if len(dataFiles) == 0 {
		return fmt.Errorf("%w: %s.%s.%s", apperrors.ErrNoTableData, share, schema, table)
	}

	files := make([][]byte, 0, len(dataFiles))
	for _, f := range dataFiles {
		data, err := c.FetchFile(ctx, f)
		if err != nil {
			return err
		}
		files = append(files, data)
	}

	return WriteCSV(w, files)
}
