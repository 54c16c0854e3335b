package collector

import (
	"context"
	"os"
	"path/filepath"

	"nightreport/internal/report"
)

// OldConfFiles reports, per user, whether ~/oldconffiles exists. The file is
// left behind by a package upgrade that kept a modified config file.
type OldConfFiles struct {
	Users []string
	Home  string
}

// NewOldConfFiles returns an OldConfFiles collector for the given users.
func NewOldConfFiles(users []string) *OldConfFiles {
	return &OldConfFiles{Users: append([]string(nil), users...), Home: "/home"}
}

func (o *OldConfFiles) Name() string   { return "oldconffiles" }
func (o *OldConfFiles) Critical() bool { return false }

func (o *OldConfFiles) Collect(ctx context.Context) (*report.Body, error) {
	users := report.NewBody()
	for _, u := range o.Users {
		_, err := os.Stat(filepath.Join(o.Home, u, "oldconffiles"))
		users.Set(u, report.Bool(err == nil))
	}
	return report.NewBody().Set("oldconffiles", report.Object(users)), nil
}
