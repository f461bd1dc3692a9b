package sandbox

const (
	LabHost        = "school_pc24"
	StudentAccount = "student1730"
	RootAccount    = "root"
	StudentSecret  = "Caesar"
	RootPassword   = "chocolatemilk"
	CalibrateName  = "calibrate"
	CalibratePath  = "/opt/eden/calibrate"
)

// LabAccounts are the logins of the lab workstation.
func LabAccounts() []Account {
	return []Account{
		{Name: StudentAccount, Password: "passwd", Home: "/home/" + StudentAccount},
		{Name: RootAccount, Password: RootPassword, Home: "/root"},
	}
}

// NewLabFileSystem builds the lab workstation's disk.
func NewLabFileSystem() *FileSystem {
	fs := NewFileSystem()

	etc := fs.Root.Mkdir("etc", RootAccount)
	etc.AddFile(&File{
		Name:    "motd",
		Owner:   RootAccount,
		Content: "Welcome to " + LabHost + ". Lab sensors are offline until calibrated.",
	})

	home := fs.Root.Mkdir("home", RootAccount).Mkdir(StudentAccount, StudentAccount)
	home.AddFile(&File{Name: "file.txt", Owner: StudentAccount, Content: StudentSecret})
	home.AddFile(&File{
		Name:    "notes.txt",
		Owner:   StudentAccount,
		Content: "Before the demo: run the sensor calibration in /opt/eden. It only works as root. Ask the admin, or read the screen in the study landscape.",
	})

	eden := fs.Root.Mkdir("opt", RootAccount).Mkdir("eden", RootAccount)
	eden.AddFile(&File{Name: CalibrateName, Owner: RootAccount, Executable: true})
	eden.AddFile(&File{
		Name:    "README",
		Owner:   RootAccount,
		Content: "calibrate: syncs the lab air sensors against a live AQI reading. Needs root.",
	})

	fs.Root.Mkdir("root", RootAccount).AddFile(&File{
		Name:    ".history",
		Owner:   RootAccount,
		Content: "cd /opt/eden\n./calibrate",
	})
	return fs
}

// NewLabTerminal opens a session on the lab workstation as the student.
func NewLabTerminal() *Terminal {
	t, err := NewTerminal(NewLabFileSystem(), LabHost, LabAccounts(), StudentAccount)
	if err != nil {
		// the student account is always present
		panic(err)
	}
	return t
}
