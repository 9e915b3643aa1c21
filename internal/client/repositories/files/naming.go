package files

import (
	"path"
	"strings"

	"github.com/dmitrijs2005/docvault/internal/common"
)

const documentsDir = "documents"

// withSuffix turns "1718.pdf" into "1718-<hex>.pdf".
func withSuffix(name string) string {
	suffix, err := common.MakeRandHexString(3)
	if err != nil {
		suffix = "x"
	}
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "-" + suffix + ext
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func validUserID(id string) bool {
	return validName(id)
}
