package vfs

import (
	"fmt"
	"strconv"

	"github.com/worldiety/vfspath/serialize"
	"gopkg.in/ini.v1"
)

// Keys of a serialized path element.
const (
	keyPath      = "path"
	keyClassName = "class-name"
	keyEncoding  = "encoding"
	keyVfsPrefix = "vfs_prefix"
	keyUser      = "user"
	keyPassword  = "password"
	keyHost      = "host"
	keyPort      = "port"
)

func elementGroup(i int) string {
	return fmt.Sprintf("path-element-%d", i)
}

// Serialize encodes the elements into a single string, independent of any path notation. The result can be
// stored e.g. as a value of a configuration file and is decoded by Engine#Deserialize.
func (p *Path) Serialize() (string, error) {
	if p.Len() == 0 {
		return "", &EmptyPathError{Message: "path is empty"}
	}

	cfg := ini.Empty()
	for i, el := range p.elements {
		sec, err := cfg.NewSection(elementGroup(i))
		if err != nil {
			return "", err
		}
		put := func(key, value string) {
			if value != "" {
				// keys are never empty, NewKey cannot fail here
				_, _ = sec.NewKey(key, value)
			}
		}
		className := ""
		if el.Class != nil {
			className = el.Class.Name
		}
		_, _ = sec.NewKey(keyPath, el.Path)
		put(keyClassName, className)
		put(keyEncoding, el.Encoding)
		put(keyVfsPrefix, el.VfsPrefix)
		put(keyUser, el.User)
		put(keyPassword, el.Password)
		put(keyHost, el.Host)
		if el.Port != 0 {
			put(keyPort, strconv.Itoa(el.Port))
		}
	}
	return serialize.Config(cfg)
}

// Deserialize reconstructs a path from the output of Path#Serialize. All element fields are taken verbatim,
// the classes are looked up by name.
func (e *Engine) Deserialize(data string) (*Path, error) {
	cfg, err := serialize.ParseConfig(data)
	if err != nil {
		return nil, err
	}

	p := &Path{engine: e}
	for i := 0; ; i++ {
		sec, err := cfg.GetSection(elementGroup(i))
		if err != nil {
			break
		}
		get := func(key string) string {
			if !sec.HasKey(key) {
				return ""
			}
			return sec.Key(key).Value()
		}

		name := get(keyClassName)
		class := e.registry().ByName(name)
		if class == nil {
			_ = p.Free()
			return nil, &UnknownClassError{Name: name}
		}

		el := e.newElement(class)
		el.Path = get(keyPath)
		el.Encoding = get(keyEncoding)
		el.VfsPrefix = get(keyVfsPrefix)
		el.User = get(keyUser)
		el.Password = get(keyPassword)
		el.Host = get(keyHost)
		if sec.HasKey(keyPort) {
			el.Port = sec.Key(keyPort).MustInt(0)
		}
		p.elements = append(p.elements, el)
	}

	if p.Len() == 0 {
		return nil, &EmptyPathError{Message: "no any path elements found"}
	}
	return p, nil
}
