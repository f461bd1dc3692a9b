package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSystem_ResolveDir(t *testing.T) {
	fs := NewLabFileSystem()
	home, err := fs.ResolveDir(fs.Root, "/home/student1730")
	require.NoError(t, err)

	tests := []struct {
		name    string
		start   *Directory
		path    string
		want    string
		wantErr error
	}{
		{"root", home, "/", "/", nil},
		{"absolute", fs.Root, "/opt/eden", "/opt/eden", nil},
		{"relative", fs.Root, "opt/eden", "/opt/eden", nil},
		{"dot", home, ".", "/home/student1730", nil},
		{"parent", home, "..", "/home", nil},
		{"parent at root is a no-op", fs.Root, "..", "/", nil},
		{"cannot escape root", home, "../../../../..", "/", nil},
		{"mixed", home, "../student1730/./../../etc", "/etc", nil},
		{"trailing slash", fs.Root, "/opt/", "/opt", nil},
		{"missing", home, "nowhere", "", ErrNotFound},
		{"file is not a dir", home, "file.txt", "", ErrNotDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := fs.ResolveDir(tt.start, tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dir.Path())
		})
	}
}

func TestTerminal_Navigation(t *testing.T) {
	term := NewLabTerminal()

	assert.Equal(t, "student1730@school_pc24:/home/student1730$ ", term.Prompt())
	assert.Equal(t, "file.txt notes.txt", term.Run("ls").Output)
	assert.Equal(t, "Caesar", term.Run("cat file.txt").Output)

	out := term.Run("cd nowhere").Output
	assert.Contains(t, out, "no such file or directory")
	assert.Equal(t, "/home/student1730", term.Cwd(), "failed cd keeps position")

	assert.Empty(t, term.Run("cd /").Output)
	assert.Empty(t, term.Run("cd ..").Output)
	assert.Equal(t, "/", term.Run("pwd").Output)
	assert.Equal(t, "etc home opt root", term.Run("ls").Output)
	assert.Equal(t, "README calibrate", term.Run("ls /opt/eden").Output)
	assert.Contains(t, term.Run("ls /missing").Output, "ls:")

	term.Run("cd")
	assert.Equal(t, "/home/student1730", term.Cwd())
}

func TestTerminal_Cat(t *testing.T) {
	term := NewLabTerminal()

	assert.Contains(t, term.Run("cat /opt/eden/calibrate").Output, "<binary file calibrate")
	assert.Contains(t, term.Run("cat /opt").Output, "Is a directory")
	assert.Contains(t, term.Run("cat missing.txt").Output, "no such file or directory")
	assert.Equal(t, "cat: missing file operand", term.Run("cat").Output)
	assert.Contains(t, term.Run("cat ../student1730/notes.txt").Output, "/opt/eden")
}

func TestTerminal_SuAndExec(t *testing.T) {
	term := NewLabTerminal()

	resp := term.Run("/opt/eden/calibrate")
	assert.Empty(t, resp.Launch)
	assert.Contains(t, resp.Output, "Permission denied")

	resp = term.Run("su root")
	assert.Equal(t, "root", resp.SwitchTo)
	assert.ErrorIs(t, term.SwitchUser("root", "passwd"), ErrAuth)
	assert.Equal(t, "student1730", term.User())

	require.NoError(t, term.SwitchUser("root", RootPassword))
	assert.Equal(t, "root", term.Run("whoami").Output)
	assert.Equal(t, "/root", term.Cwd())

	term.Run("cd /opt/eden")
	assert.Equal(t, CalibrateName, term.Run("./calibrate").Launch)
	assert.Equal(t, CalibrateName, term.Run("run calibrate").Launch)
	assert.Contains(t, term.Run("./README").Output, "Permission denied")
	assert.Contains(t, term.Run("./ghost").Output, "no such file")
}

func TestTerminal_Misc(t *testing.T) {
	term := NewLabTerminal()

	assert.Equal(t, Response{}, term.Run("   "))
	assert.Equal(t, "sudo: command not found", term.Run("sudo make me a sandwich").Output)
	assert.Contains(t, term.Run("su mallory").Output, "does not exist")
	assert.Equal(t, "root", term.Run("su").SwitchTo)
	assert.True(t, term.Run("exit").Exit)
	assert.True(t, term.Run("quit").Exit)
	assert.Contains(t, term.Run("help").Output, "cd <path>")

	_, err := NewTerminal(NewFileSystem(), "h", nil, "ghost")
	assert.Error(t, err)
}
