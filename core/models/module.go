package models

// Module is one compiled unit of the host project. SourceFiles are absolute
// paths; References point at dependency artifacts (usually .dll files).
type Module struct {
	Name        string
	SourceFiles []string
	References  []string
}

// Installation is an editor install found on this machine.
type Installation struct {
	Name string
	Path string
}
