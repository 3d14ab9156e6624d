package mutators

import (
	"fmt"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"

	"github.com/jenconf/jenconf/pkg/xmldoc"
)

// locationConffile holds the Jenkins location configuration, including
// the administrator e-mail address.
const locationConffile = "jenkins.model.JenkinsLocationConfiguration.xml"

// AdminEmailParams are the state-file params of an adminemail resource.
// Address overrides the resource name as the address to set.
type AdminEmailParams struct {
	Address string `yaml:"address" validate:"omitempty,email"`
}

// AdminEmail sets the single adminAddress value of the Jenkins location
// configuration. Repeated applications always converge to one element
// holding the latest address.
type AdminEmail struct {
	name    string
	address string
}

// NewAdminEmail builds the mutator. When address is empty the resource
// name itself is the address, matching the state-file convention of
// naming the resource after the e-mail.
func NewAdminEmail(name, address string) (*AdminEmail, error) {
	if address == "" {
		address = name
	}
	if err := validate.Var(address, "required,email"); err != nil {
		return nil, fmt.Errorf("adminemail %q: invalid address %q", name, address)
	}
	return &AdminEmail{name: name, address: address}, nil
}

func newAdminEmailFromParams(name string, params *yaml.Node) (Mutator, error) {
	var p AdminEmailParams
	if err := decodeParams(params, &p); err != nil {
		return nil, fmt.Errorf("adminemail %q: %w", name, err)
	}
	return NewAdminEmail(name, p.Address)
}

// Name implements Mutator.
func (m *AdminEmail) Name() string { return m.name }

// RootTag implements Mutator.
func (m *AdminEmail) RootTag() string { return "jenkins.model.JenkinsLocationConfiguration" }

// DefaultConffile implements Mutator.
func (m *AdminEmail) DefaultConffile() string { return locationConffile }

// Describe implements Mutator.
func (m *AdminEmail) Describe(string) string {
	return fmt.Sprintf("set admin email to %s", m.address)
}

// Mutate implements Mutator.
func (m *AdminEmail) Mutate(doc *etree.Document) error {
	xmldoc.SetChildText(doc.Root(), "adminAddress", m.address)
	return nil
}
