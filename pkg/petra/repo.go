package petra

import (
	"crypto/md5"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DBISAMDriver is the ODBC driver name installed with Petra.
const DBISAMDriver = "DBISAM 4 ODBC Driver"

// MakeConnParams derives DBISAM connection parameters from a repo's
// base directory. The database lives in the DB subdirectory.
func MakeConnParams(repoPath string) ConnParams {
	return ConnParams{
		Driver:      DBISAMDriver,
		CatalogName: filepath.Join(repoPath, "DB"),
	}
}

// RepoID builds a short human-friendly id from a repo path: the first
// three characters of the directory name plus six hex characters of an
// md5 over the lowercased full path. Repos reached via UNC path vs.
// drive letter get different ids on purpose.
//
// Example: //scarab/petra_projects/blank_us_nad27_mean -> BLA_0895D9
func RepoID(fsPath string) string {
	name := filepath.Base(filepath.Clean(fsPath))
	prefix := strings.ToUpper(name)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	for len(prefix) < 3 {
		prefix += "_"
	}
	sum := md5.Sum([]byte(strings.ToLower(fsPath)))
	return strings.ToUpper(fmt.Sprintf("%s_%x", prefix, sum[:3]))
}

// ExportFilename names a collection output file:
// <repo_id>_<unix_ts>_<asset>.json, lowercased.
func ExportFilename(repoID, asset string) string {
	return strings.ToLower(
		fmt.Sprintf("%s_%d_%s.json", repoID, time.Now().Unix(), asset),
	)
}
