// Package sandbox is a toy in-memory filesystem and shell used by the lab
// terminal puzzle. It has no real security boundary.
package sandbox

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrNotFound     = errors.New("no such file or directory")
	ErrNotDirectory = errors.New("not a directory")
)

// File is a leaf node. Executable files have no readable content.
type File struct {
	Name       string
	Owner      string
	Content    string
	Executable bool
}

// Directory is a node with named children.
type Directory struct {
	Name   string
	Owner  string
	parent *Directory
	files  map[string]*File
	dirs   map[string]*Directory
}

func newDirectory(name, owner string, parent *Directory) *Directory {
	return &Directory{
		Name:   name,
		Owner:  owner,
		parent: parent,
		files:  make(map[string]*File),
		dirs:   make(map[string]*Directory),
	}
}

// Mkdir returns the named child directory, creating it if needed.
func (d *Directory) Mkdir(name, owner string) *Directory {
	if sub, ok := d.dirs[name]; ok {
		return sub
	}
	sub := newDirectory(name, owner, d)
	d.dirs[name] = sub
	return sub
}

// AddFile places f in the directory, replacing any file of the same name.
func (d *Directory) AddFile(f *File) {
	d.files[f.Name] = f
}

// Path returns the absolute path of the directory.
func (d *Directory) Path() string {
	if d.parent == nil {
		return "/"
	}
	var parts []string
	for cur := d; cur.parent != nil; cur = cur.parent {
		parts = append(parts, cur.Name)
	}
	slices.Reverse(parts)
	return "/" + strings.Join(parts, "/")
}

// Entries lists file and subdirectory names in sorted order.
func (d *Directory) Entries() []string {
	names := make([]string, 0, len(d.files)+len(d.dirs))
	for name := range d.files {
		names = append(names, name)
	}
	for name := range d.dirs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FileSystem is a tree rooted at "/".
type FileSystem struct {
	Root *Directory
}

func NewFileSystem() *FileSystem {
	return &FileSystem{Root: newDirectory("/", "root", nil)}
}

// ResolveDir walks path from start. Absolute paths start at the root. ".."
// at the root stays at the root.
func (fs *FileSystem) ResolveDir(start *Directory, path string) (*Directory, error) {
	cur := start
	if strings.HasPrefix(path, "/") {
		cur = fs.Root
	}
	for _, part := range strings.Split(path, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if cur.parent != nil {
				cur = cur.parent
			}
		default:
			next, ok := cur.dirs[part]
			if !ok {
				if _, isFile := cur.files[part]; isFile {
					return nil, fmt.Errorf("%s: %w", part, ErrNotDirectory)
				}
				return nil, fmt.Errorf("%s: %w", part, ErrNotFound)
			}
			cur = next
		}
	}
	return cur, nil
}

// ResolveFile finds the file named by path.
func (fs *FileSystem) ResolveFile(start *Directory, path string) (*File, error) {
	dirPath, name := "", path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		dirPath, name = path[:i+1], path[i+1:]
	}
	dir, err := fs.ResolveDir(start, dirPath)
	if err != nil {
		return nil, err
	}
	f, ok := dir.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return f, nil
}

// IsDir reports whether path names a directory.
func (fs *FileSystem) IsDir(start *Directory, path string) bool {
	_, err := fs.ResolveDir(start, path)
	return err == nil
}
