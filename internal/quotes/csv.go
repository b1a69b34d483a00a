package quotes

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"
)

// csvColumns is the fixed export column order. Consumers depend on it staying
// stable across releases.
var csvColumns = []string{
	"id", "name", "email", "phone", "details",
	"attachments", "client_ip", "user_agent", "created_at",
}

// WriteCSV serializes submissions with a header row. Attachment URLs are
// space-joined; binaries are never included.
func WriteCSV(w io.Writer, subs []*Submission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}
	for _, sub := range subs {
		urls := make([]string, 0, len(sub.Attachments))
		for _, a := range sub.Attachments {
			urls = append(urls, a.URL)
		}
		record := []string{
			strconv.FormatInt(sub.ID, 10),
			sub.Name,
			sub.Email,
			sub.Phone,
			sub.Details,
			strings.Join(urls, " "),
			sub.ClientIP,
			sub.UserAgent,
			sub.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
