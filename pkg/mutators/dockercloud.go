package mutators

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"

	"github.com/jenconf/jenconf/pkg/xmldoc"
)

// dockerCloudTag is the fully qualified class name Jenkins uses for a
// docker-plugin cloud entry under <clouds>.
const dockerCloudTag = "com.nirima.jenkins.plugins.docker.DockerCloud"

const (
	// DefaultPluginVersion is stamped into the plugin attribute of new
	// cloud entries when the resource does not pin one.
	DefaultPluginVersion = "0.15.0"

	// DefaultContainerCap bounds container count when unspecified.
	DefaultContainerCap = 100

	// dockerCloudConffile is the main Jenkins config file.
	dockerCloudConffile = "config.xml"
)

// DockerCloudParams are the state-file params of a dockercloud resource.
type DockerCloudParams struct {
	ServerURL      string `yaml:"server_url" validate:"required,url"`
	ConnectTimeout int    `yaml:"connect_timeout" validate:"min=0"`
	ReadTimeout    int    `yaml:"read_timeout" validate:"min=0"`
	Capacity       *int   `yaml:"capacity" validate:"omitempty,min=0"`
	PluginVersion  string `yaml:"plugin_version"`
}

// DockerCloud inserts or updates one named docker cloud entry under
// hudson/clouds. Entries are matched on the text of their <name> child;
// an existing match is updated field by field, so re-applying the same
// resource converges instead of duplicating fields.
type DockerCloud struct {
	name   string
	params DockerCloudParams
}

// NewDockerCloud builds the mutator, applying the containerCap and
// plugin version defaults.
func NewDockerCloud(name string, params DockerCloudParams) *DockerCloud {
	if params.Capacity == nil {
		capacity := DefaultContainerCap
		params.Capacity = &capacity
	}
	if params.PluginVersion == "" {
		params.PluginVersion = DefaultPluginVersion
	}
	return &DockerCloud{name: name, params: params}
}

func newDockerCloudFromParams(name string, params *yaml.Node) (Mutator, error) {
	var p DockerCloudParams
	if err := decodeParams(params, &p); err != nil {
		return nil, fmt.Errorf("dockercloud %q: %w", name, err)
	}
	return NewDockerCloud(name, p), nil
}

// Name implements Mutator.
func (m *DockerCloud) Name() string { return m.name }

// RootTag implements Mutator.
func (m *DockerCloud) RootTag() string { return "hudson" }

// DefaultConffile implements Mutator.
func (m *DockerCloud) DefaultConffile() string { return dockerCloudConffile }

// Describe implements Mutator.
func (m *DockerCloud) Describe(conffile string) string {
	return fmt.Sprintf("updated configuration file %s", conffile)
}

// Mutate implements Mutator.
func (m *DockerCloud) Mutate(doc *etree.Document) error {
	clouds := xmldoc.FindOrCreateChild(doc.Root(), "clouds")
	if entry := m.findEntry(clouds); entry != nil {
		m.updateEntry(entry)
		return nil
	}
	m.createEntry(clouds)
	return nil
}

// findEntry returns the existing cloud entry whose <name> text equals the
// requested name, or nil.
func (m *DockerCloud) findEntry(clouds *etree.Element) *etree.Element {
	for _, entry := range clouds.SelectElements(dockerCloudTag) {
		if nameTag := entry.SelectElement("name"); nameTag != nil && nameTag.Text() == m.name {
			return entry
		}
	}
	return nil
}

// createEntry appends a fresh cloud entry with all fields in the order
// Jenkins writes them.
func (m *DockerCloud) createEntry(clouds *etree.Element) {
	entry := clouds.CreateElement(dockerCloudTag)
	entry.CreateAttr("plugin", "docker-plugin@"+m.params.PluginVersion)
	xmldoc.AppendChildText(entry, "name", m.name)
	templates := entry.CreateElement("templates")
	templates.CreateAttr("class", "empty-list")
	xmldoc.AppendChildText(entry, "serverUrl", m.params.ServerURL)
	xmldoc.AppendChildText(entry, "connectTimeout", strconv.Itoa(m.params.ConnectTimeout))
	xmldoc.AppendChildText(entry, "readTimeout", strconv.Itoa(m.params.ReadTimeout))
	entry.CreateElement("credentialsId")
	xmldoc.AppendChildText(entry, "containerCap", strconv.Itoa(*m.params.Capacity))
}

// updateEntry overwrites the fields of a matched entry in place.
func (m *DockerCloud) updateEntry(entry *etree.Element) {
	xmldoc.SetChildText(entry, "name", m.name)
	templates := xmldoc.FindOrCreateChild(entry, "templates")
	if templates.SelectAttr("class") == nil {
		templates.CreateAttr("class", "empty-list")
	}
	xmldoc.SetChildText(entry, "serverUrl", m.params.ServerURL)
	xmldoc.SetChildText(entry, "connectTimeout", strconv.Itoa(m.params.ConnectTimeout))
	xmldoc.SetChildText(entry, "readTimeout", strconv.Itoa(m.params.ReadTimeout))
	xmldoc.FindOrCreateChild(entry, "credentialsId")
	xmldoc.SetChildText(entry, "containerCap", strconv.Itoa(*m.params.Capacity))
}
