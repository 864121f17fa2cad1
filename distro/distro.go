// Package distro classifies the host into a package-management family.
package distro

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	gover "github.com/hashicorp/go-version"
	"github.com/joho/godotenv"
)

// Family is a package-management family.
type Family string

const (
	Debian Family = "debian"
	RedHat Family = "redhat"
	Arch   Family = "arch"
)

// Default is the family used when the host can't be classified.
const Default = Debian

// patterns are checked in order, first match wins.
var patterns = []struct {
	family Family
	re     *regexp.Regexp
}{
	{Debian, regexp.MustCompile(`debian|ubuntu|raspbian`)},
	{RedHat, regexp.MustCompile(`fedora|centos|red hat|rhel`)},
	{Arch, regexp.MustCompile(`arch|manjaro`)},
}

// OSRelease holds the fields of an os-release file used for classification.
type OSRelease struct {
	ID         string
	IDLike     string
	Name       string
	PrettyName string
	VersionID  string
}

// String returns the identification string the family is matched against.
func (r *OSRelease) String() string {
	return strings.Join(strings.Fields(strings.Join(
		[]string{r.ID, r.IDLike, r.Name, r.PrettyName}, " ")), " ")
}

// Version parses VERSION_ID. Rolling releases have none.
func (r *OSRelease) Version() (*gover.Version, error) {
	if r.VersionID == "" {
		return nil, fmt.Errorf("no VERSION_ID")
	}
	return gover.NewVersion(r.VersionID)
}

// ParseOSRelease parses the KEY="value" content of an os-release file.
func ParseOSRelease(r io.Reader) (*OSRelease, error) {
	env, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse os-release: %w", err)
	}

	return &OSRelease{
		ID:         env["ID"],
		IDLike:     env["ID_LIKE"],
		Name:       env["NAME"],
		PrettyName: env["PRETTY_NAME"],
		VersionID:  env["VERSION_ID"],
	}, nil
}

// Classify maps an OS identification string to a family.
// The boolean is false when no pattern matched and Default was returned.
func Classify(id string) (Family, bool) {
	id = strings.ToLower(id)
	for _, p := range patterns {
		if p.re.MatchString(id) {
			return p.family, true
		}
	}
	return Default, false
}

// Detect reads the os-release file at path and returns the host family.
// Detection never fails: an unreadable or unknown release falls back to Default
// with a warning.
func Detect(path string) Family {
	f, err := os.Open(path)
	if err != nil {
		log.Warnf("could not read %s: %v. Falling back to %s", path, err, Default)
		return Default
	}
	defer f.Close()

	rel, err := ParseOSRelease(f)
	if err != nil {
		log.Warnf("%v. Falling back to %s", err, Default)
		return Default
	}

	return detect(rel)
}

func detect(rel *OSRelease) Family {
	family, ok := Classify(rel.String())
	if !ok {
		log.Warnf("unsupported distribution %q, falling back to %s commands", rel.String(), Default)
		return family
	}

	if v, err := rel.Version(); err == nil {
		log.Debug("OS release parsed", "id", rel.ID, "version", v.String())
	}

	log.Infof("Detected %s based system (%s)", family, rel.PrettyName)

	return family
}
