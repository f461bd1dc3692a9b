package sandbox

import (
	"errors"
	"fmt"
	"strings"
)

var ErrAuth = errors.New("authentication failure")

// Account is a terminal login.
type Account struct {
	Name     string
	Password string
	Home     string
}

// Response is the result of one shell line.
type Response struct {
	Output string
	// Exit is set when the player leaves the terminal.
	Exit bool
	// SwitchTo names the account a su command wants; the caller collects the
	// password and calls SwitchUser.
	SwitchTo string
	// Launch names an executable the current user may run.
	Launch string
}

// Terminal is a shell session over a FileSystem.
type Terminal struct {
	fs       *FileSystem
	host     string
	accounts map[string]Account
	user     Account
	cwd      *Directory
}

// NewTerminal logs user in and starts in their home directory, or the root
// when the home is missing.
func NewTerminal(fs *FileSystem, host string, accounts []Account, user string) (*Terminal, error) {
	t := &Terminal{
		fs:       fs,
		host:     host,
		accounts: make(map[string]Account, len(accounts)),
	}
	for _, a := range accounts {
		t.accounts[a.Name] = a
	}
	acct, ok := t.accounts[user]
	if !ok {
		return nil, fmt.Errorf("unknown account %q", user)
	}
	t.login(acct)
	return t, nil
}

func (t *Terminal) login(a Account) {
	t.user = a
	t.cwd = t.fs.Root
	if home, err := t.fs.ResolveDir(t.fs.Root, a.Home); err == nil {
		t.cwd = home
	}
}

func (t *Terminal) User() string { return t.user.Name }
func (t *Terminal) Cwd() string  { return t.cwd.Path() }

// Prompt renders user@host:dir$.
func (t *Terminal) Prompt() string {
	return fmt.Sprintf("%s@%s:%s$ ", t.user.Name, t.host, t.cwd.Path())
}

// SwitchUser changes the session user when password matches.
func (t *Terminal) SwitchUser(name, password string) error {
	acct, ok := t.accounts[name]
	if !ok || acct.Password != password {
		return ErrAuth
	}
	t.login(acct)
	return nil
}

// Run executes one command line.
func (t *Terminal) Run(line string) Response {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Response{}
	}
	cmd, args := fields[0], fields[1:]
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	switch cmd {
	case "exit", "quit", "logout":
		return Response{Output: "Connection closed.", Exit: true}
	case "help":
		return Response{Output: "Commands: ls [path], cd <path>, cat <file>, pwd, whoami, su <user>, ./<program>, run <program>, exit"}
	case "pwd":
		return Response{Output: t.cwd.Path()}
	case "whoami":
		return Response{Output: t.user.Name}
	case "ls":
		return Response{Output: t.ls(arg)}
	case "cd":
		return Response{Output: t.cd(arg)}
	case "cat":
		return Response{Output: t.cat(arg)}
	case "su":
		if arg == "" {
			arg = "root"
		}
		if _, ok := t.accounts[arg]; !ok {
			return Response{Output: fmt.Sprintf("su: user %s does not exist", arg)}
		}
		return Response{SwitchTo: arg}
	case "run":
		if arg == "" {
			return Response{Output: "run: missing program"}
		}
		return t.exec(arg)
	}

	if strings.Contains(cmd, "/") {
		return t.exec(cmd)
	}
	return Response{Output: fmt.Sprintf("%s: command not found", cmd)}
}

func (t *Terminal) ls(path string) string {
	dir, err := t.fs.ResolveDir(t.cwd, path)
	if err != nil {
		return fmt.Sprintf("ls: %v", err)
	}
	return strings.Join(dir.Entries(), " ")
}

func (t *Terminal) cd(path string) string {
	if path == "" || path == "~" {
		path = t.user.Home
	}
	dir, err := t.fs.ResolveDir(t.cwd, path)
	if err != nil {
		return fmt.Sprintf("cd: %v", err)
	}
	t.cwd = dir
	return ""
}

func (t *Terminal) cat(path string) string {
	if path == "" {
		return "cat: missing file operand"
	}
	if t.fs.IsDir(t.cwd, path) {
		return fmt.Sprintf("cat: %s: Is a directory", path)
	}
	f, err := t.fs.ResolveFile(t.cwd, path)
	if err != nil {
		return fmt.Sprintf("cat: %v", err)
	}
	if f.Executable {
		return fmt.Sprintf("<binary file %s: %d bytes of machine code>", f.Name, 4096)
	}
	return f.Content
}

func (t *Terminal) exec(path string) Response {
	f, err := t.fs.ResolveFile(t.cwd, path)
	if err != nil {
		return Response{Output: fmt.Sprintf("%v", err)}
	}
	if !f.Executable {
		return Response{Output: fmt.Sprintf("%s: Permission denied", path)}
	}
	if f.Owner != t.user.Name {
		return Response{Output: fmt.Sprintf("%s: Permission denied (owner %s)", path, f.Owner)}
	}
	return Response{Launch: f.Name}
}
