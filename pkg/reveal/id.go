package reveal

import (
	"strconv"

	"github.com/google/uuid"
)

// namespace scopes path ids to this program.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/scrollplot"))

// PathID is the stable id of the point path for category and year. Ids are
// name-based UUIDs so identical frames render byte-identical output.
func PathID(category string, year int) string {
	return "p-" + uuid.NewSHA1(namespace, []byte(category+"/"+strconv.Itoa(year))).String()
}

// LineID is the stable id of the series line path for category.
func LineID(category string) string {
	return "l-" + uuid.NewSHA1(namespace, []byte(category+"/line")).String()
}
