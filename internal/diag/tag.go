package diag

import (
	"strconv"

	"github.com/google/uuid"
)

// tagNamespace is a fixed, arbitrary namespace UUID used only to derive
// stable instance tags; it carries no meaning of its own.
var tagNamespace = uuid.MustParse("7b3b9e2a-9c3d-4e1a-8f2e-5d6a1b4c9e10")

// InstanceTag derives a stable, deterministic identifier for one cached
// instance, for cross-referencing entries in diagnostic dumps. It is
// built with uuid.NewSHA1 rather than uuid.New() specifically because
// it must stay identical across runs with the same tree type name and
// (id, age, variant) — a random UUID would break that under a fixed
// seed.
func InstanceTag(treeType string, id, age, variant int) string {
	name := treeType + "/" + strconv.Itoa(id) + "/" + strconv.Itoa(age) + "/" + strconv.Itoa(variant)
	return uuid.NewSHA1(tagNamespace, []byte(name)).String()
}
