package gir

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
)

// Repository is the read-only query surface the generator consumes.
type Repository interface {
	// Require loads a namespace and everything it includes.
	Require(namespace string) (*Namespace, error)
	// Infos returns the descriptors of a loaded namespace in declaration order.
	Infos(namespace string) ([]*Info, error)
	// Find looks up a descriptor by name in a loaded namespace.
	Find(namespace, name string) (*Info, bool)
}

// ErrNamespaceNotFound is returned when no search path entry provides the
// requested namespace.
var ErrNamespaceNotFound = errors.New("namespace not found in search path")

// FileRepository loads namespace documents from YAML files and txtar
// bundles found in a list of directories.
type FileRepository struct {
	searchPath []string
	loaded     map[string]*Namespace
}

// NewFileRepository creates a repository over the given search path.
// Directories are searched in order.
func NewFileRepository(searchPath ...string) *FileRepository {
	return &FileRepository{
		searchPath: searchPath,
		loaded:     make(map[string]*Namespace),
	}
}

// Require implements Repository.
func (r *FileRepository) Require(namespace string) (*Namespace, error) {
	return r.require(namespace, nil)
}

func (r *FileRepository) require(namespace string, chain []string) (*Namespace, error) {
	if ns, ok := r.loaded[namespace]; ok {
		return ns, nil
	}

	for _, seen := range chain {
		if seen == namespace {
			return nil, &MetadataLoadError{
				Namespace: namespace,
				Err:       errors.Errorf("include cycle: %s", strings.Join(append(chain, namespace), " -> ")),
			}
		}
	}

	data, err := r.find(namespace)
	if err != nil {
		return nil, &MetadataLoadError{Namespace: namespace, Err: err}
	}

	ns, err := Parse(data)
	if err != nil {
		return nil, &MetadataLoadError{Namespace: namespace, Err: err}
	}

	if ns.Name != namespace {
		return nil, &MetadataLoadError{
			Namespace: namespace,
			Err:       errors.Errorf("document declares namespace %q", ns.Name),
		}
	}

	for _, inc := range ns.Includes {
		if _, err := r.require(inc, append(chain, namespace)); err != nil {
			return nil, &MetadataLoadError{Namespace: namespace, Err: errors.Wrapf(err, "include %s", inc)}
		}
	}

	r.link(ns)
	r.loaded[namespace] = ns

	return ns, nil
}

// Add registers a namespace built in memory or parsed elsewhere. Defaults
// are applied if Parse has not done so. Its includes must have been added or
// be loadable from the search path.
func (r *FileRepository) Add(ns *Namespace) error {
	if ns.byName == nil {
		if err := applyDefaults(ns); err != nil {
			return &MetadataLoadError{Namespace: ns.Name, Err: err}
		}
	}

	for _, inc := range ns.Includes {
		if _, err := r.require(inc, []string{ns.Name}); err != nil {
			return &MetadataLoadError{Namespace: ns.Name, Err: errors.Wrapf(err, "include %s", inc)}
		}
	}

	r.link(ns)
	r.loaded[ns.Name] = ns

	return nil
}

// Infos implements Repository.
func (r *FileRepository) Infos(namespace string) ([]*Info, error) {
	ns, ok := r.loaded[namespace]
	if !ok {
		return nil, &MetadataLoadError{Namespace: namespace, Err: errors.New("namespace not loaded")}
	}

	return ns.Infos, nil
}

// Find implements Repository.
func (r *FileRepository) Find(namespace, name string) (*Info, bool) {
	ns, ok := r.loaded[namespace]
	if !ok {
		return nil, false
	}

	return ns.Find(name)
}

// find returns the raw document for a namespace: <dir>/<ns>.yaml,
// <dir>/<ns>.yml, or a <ns>.yaml member of any *.txtar in the directory.
func (r *FileRepository) find(namespace string) ([]byte, error) {
	want := []string{namespace + ".yaml", namespace + ".yml"}

	for _, dir := range r.searchPath {
		for _, name := range want {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err == nil {
				return data, nil
			}

			if !os.IsNotExist(err) {
				return nil, errors.Wrapf(err, "reading %s", filepath.Join(dir, name))
			}
		}

		bundles, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
		if err != nil {
			return nil, errors.Wrapf(err, "listing bundles in %s", dir)
		}

		for _, bundle := range bundles {
			ar, err := txtar.ParseFile(bundle)
			if err != nil {
				return nil, errors.Wrapf(err, "reading bundle %s", bundle)
			}

			for _, f := range ar.Files {
				for _, name := range want {
					if f.Name == name {
						return f.Data, nil
					}
				}
			}
		}
	}

	return nil, errors.Wrapf(ErrNamespaceNotFound, "%s (searched %s)", namespace, strings.Join(r.searchPath, string(os.PathListSeparator)))
}

// Parse decodes one namespace document and fills in defaults. Interface
// references stay unresolved until the namespace is added to a repository.
func Parse(data []byte) (*Namespace, error) {
	var ns Namespace

	if err := yaml.Unmarshal(data, &ns); err != nil {
		return nil, errors.Wrap(err, "parsing namespace document")
	}

	if ns.Name == "" {
		return nil, errors.New("namespace document has no namespace name")
	}

	if err := applyDefaults(&ns); err != nil {
		return nil, errors.Wrapf(err, "namespace %s", ns.Name)
	}

	return &ns, nil
}

// applyDefaults fills in names the documents may leave out and indexes the
// descriptors by name.
func applyDefaults(ns *Namespace) error {
	if ns.CPrefix == "" {
		ns.CPrefix = ns.Name
	}

	symbolPrefix := strcase.ToSnake(ns.CPrefix)

	ns.byName = make(map[string]*Info, len(ns.Infos))

	for _, info := range ns.Infos {
		if info.Name == "" {
			return errors.New("descriptor without a name")
		}

		if _, dup := ns.byName[info.Name]; dup {
			return errors.Errorf("duplicate descriptor %q", info.Name)
		}

		ns.byName[info.Name] = info
		info.Namespace = ns.Name

		switch {
		case info.Type.IsCallable():
			if info.Symbol == "" {
				info.Symbol = symbolPrefix + "_" + strcase.ToSnake(info.Name)
			}

		case info.Type.IsEnumLike():
			if info.StorageType == TagVoid {
				info.StorageType = TagInt32
				if info.Type == InfoFlags {
					info.StorageType = TagUint32
				}
			}

			fallthrough

		case info.Type.IsRegistered():
			if info.CTypeName == "" {
				info.CTypeName = ns.CPrefix + info.Name
			}
		}

		typePrefix := symbolPrefix + "_" + strcase.ToSnake(info.Name)

		for _, m := range info.Methods {
			m.Namespace = ns.Name
			m.container = info

			if m.Type == InfoInvalid {
				m.Type = InfoFunction
			}

			if m.Symbol == "" {
				m.Symbol = typePrefix + "_" + strcase.ToSnake(m.Name)
			}

			// Enumeration methods never take an instance.
			if !m.IsConstructor() && !m.Static && !info.Type.IsEnumLike() {
				m.Flags |= FlagIsMethod
			}
		}
	}

	return nil
}

// link resolves interface references against the namespace itself and
// against already loaded namespaces for qualified names.
func (r *FileRepository) link(ns *Namespace) {
	resolve := func(t *TypeInfo) {
		if t == nil || t.Tag != TagInterface || t.Reference == "" {
			return
		}

		if nsName, name, ok := strings.Cut(t.Reference, "."); ok {
			if nsName == ns.Name {
				t.iface, _ = ns.Find(name)
			} else if other, loaded := r.loaded[nsName]; loaded {
				t.iface, _ = other.Find(name)
			}

			return
		}

		t.iface, _ = ns.Find(t.Reference)
	}

	var walk func(info *Info)
	walk = func(info *Info) {
		resolve(info.ReturnType)

		for _, arg := range info.Args {
			resolve(arg.Type)
		}

		for _, m := range info.Methods {
			walk(m)
		}
	}

	for _, info := range ns.Infos {
		walk(info)
	}
}
