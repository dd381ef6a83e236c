package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/ravinder2932/Media-Management/internal/auth"
	"github.com/ravinder2932/Media-Management/internal/config"
	"github.com/ravinder2932/Media-Management/internal/db"
	"github.com/ravinder2932/Media-Management/internal/portal"
	"github.com/ravinder2932/Media-Management/internal/util"
)

// shell is the interactive presentation layer. It holds no domain state of
// its own; every command is a synchronous call into the portal services
// followed by a re-render of whatever the command touched.
type shell struct {
	p   *portal.Portal
	cfg config.Config
	in  *bufio.Reader
}

func newShell(p *portal.Portal, cfg config.Config) *shell {
	return &shell{p: p, cfg: cfg, in: bufio.NewReader(os.Stdin)}
}

func (s *shell) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Printf("%s:%s> ", s.promptUser(), s.promptPath())
		line, err := s.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		// Any typed command counts as user activity for the session timer.
		s.p.Session.UpdateActivity()

		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}
		if err := s.dispatch(args[0], args[1:]); err != nil {
			fmt.Println("error:", err)
		}
	}
}

func (s *shell) promptUser() string {
	if u := s.p.Identity.CurrentUser(); u != nil {
		return u.Email
	}
	return "guest"
}

func (s *shell) promptPath() string {
	cur := s.p.Folders.CurrentFolder()
	if cur == nil {
		return "/"
	}
	path, err := s.p.Folders.Path(*cur)
	if err != nil {
		return "/"
	}
	names := make([]string, 0, len(path))
	for _, f := range path {
		names = append(names, f.Name)
	}
	return "/" + strings.Join(names, "/")
}

func (s *shell) dispatch(cmd string, args []string) error {
	switch cmd {
	case "help":
		s.printHelp()
		return nil
	case "login":
		return s.cmdLogin(args)
	case "logout":
		s.p.Identity.Logout()
		return nil
	case "whoami":
		return s.cmdWhoami()
	case "passwd":
		return s.cmdPasswd(args)
	case "ls":
		return s.cmdLs()
	case "cd":
		return s.cmdCd(args)
	case "mkdir":
		return s.cmdMkdir(args)
	case "rmdir":
		return s.cmdRmdir(args)
	case "view":
		return s.cmdView(args)
	case "upload":
		return s.cmdUpload(args)
	case "files":
		return s.cmdFiles(args)
	case "search":
		return s.cmdSearch(args)
	case "recent":
		return s.cmdRecent(args)
	case "get":
		return s.cmdGet(args)
	case "rm":
		return s.cmdRm(args)
	case "share":
		return s.cmdShare(args)
	case "shares":
		return s.cmdShares()
	case "share-rm":
		return s.cmdShareRm(args)
	case "open":
		return s.cmdOpen(args)
	case "users":
		return s.cmdUsers()
	case "useradd":
		return s.cmdUserAdd(args)
	case "userdel":
		return s.cmdUserDel(args)
	case "role":
		return s.cmdRole(args)
	case "perm":
		return s.cmdPerm(args)
	case "audit":
		return s.cmdAudit(args)
	case "stats":
		return s.cmdStats()
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func (s *shell) printHelp() {
	fmt.Print(`Session
  login <email>            authenticate (password prompted)
  logout | whoami          end session / show current user
  passwd <user-id>         change a password

Folders
  ls | cd <name|..|/>      browse the folder tree
  mkdir <name>             create a folder here
  rmdir <name>             delete a child folder (no cascade)

Files
  upload <path> [tags]     upload a local file's metadata (tags comma-separated)
  files [type]             list files, optionally by image|video|audio|document
  view <type|all>          set the dashboard type filter
  search <text>            name substring search
  recent <today|week|month> files uploaded in a date range
  get <file-id>            download (prints content reference)
  rm <file-id>             delete a file

Sharing
  share <file-id> [hours] [max]  create a password-protected link
  shares | share-rm <link-id>    list / revoke links
  open <link-id>                 redeem a link (password prompted)

Admin
  users | useradd <email> <name> <role> | userdel <user-id>
  role <user-id> <role>    change role (resets permission overrides)
  perm <user-id> <flag> <on|off>
  audit [n] | stats

exit
`)
}

func (s *shell) requireUser() (db.User, error) {
	u := s.p.Identity.CurrentUser()
	if u == nil {
		return db.User{}, portal.ErrNotAuthenticated
	}
	return *u, nil
}

func (s *shell) cmdLogin(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: login <email>")
	}
	password, err := s.promptPassword("Password")
	if err != nil {
		return err
	}
	u, err := s.p.Identity.Login(args[0], password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s!\n", u.Name)
	return nil
}

func (s *shell) cmdWhoami() error {
	u := s.p.Identity.CurrentUser()
	if u == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s permissions=%+v\n", u.Name, u.Email, u.Role, u.Permissions)
	return nil
}

func (s *shell) cmdPasswd(args []string) error {
	actor, err := s.requireUser()
	if err != nil {
		return err
	}
	target := actor.ID
	if len(args) == 1 {
		target = args[0]
	}
	password, err := s.promptPasswordTwice("New password")
	if err != nil {
		return err
	}
	return s.p.Identity.UpdatePassword(target, password, actor)
}

func (s *shell) cmdLs() error {
	cur := s.p.Folders.CurrentFolder()
	children, err := s.p.Folders.Children(cur)
	if err != nil {
		return err
	}
	for _, f := range children {
		fmt.Printf("  %s/\t(%s)\n", f.Name, f.ID)
	}
	files, err := s.p.Files.InFolder(cur)
	if err != nil {
		return err
	}
	s.printFiles(files)
	return nil
}

func (s *shell) resolveChild(name string) (db.Folder, error) {
	children, err := s.p.Folders.Children(s.p.Folders.CurrentFolder())
	if err != nil {
		return db.Folder{}, err
	}
	for _, f := range children {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return db.Folder{}, portal.ErrNotFound
}

func (s *shell) cmdCd(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cd <name|..|/>")
	}
	switch args[0] {
	case "/":
		s.p.Folders.SetCurrentFolder(nil)
		return nil
	case "..":
		cur := s.p.Folders.CurrentFolder()
		if cur == nil {
			return nil
		}
		f, err := s.p.Folders.Get(*cur)
		if err != nil {
			s.p.Folders.SetCurrentFolder(nil)
			return nil
		}
		s.p.Folders.SetCurrentFolder(f.ParentID)
		return nil
	default:
		f, err := s.resolveChild(args[0])
		if err != nil {
			return err
		}
		id := f.ID
		s.p.Folders.SetCurrentFolder(&id)
		return nil
	}
}

func (s *shell) cmdMkdir(args []string) error {
	u, err := s.requireUser()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: mkdir <name>")
	}
	id, err := s.p.Folders.Create(strings.Join(args, " "), s.p.Folders.CurrentFolder(), u.ID)
	if err != nil {
		return err
	}
	fmt.Println("created folder", id)
	return nil
}

func (s *shell) cmdRmdir(args []string) error {
	if _, err := s.requireUser(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: rmdir <name>")
	}
	f, err := s.resolveChild(args[0])
	if err != nil {
		return err
	}
	return s.p.Folders.Delete(f.ID)
}

func (s *shell) cmdView(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: view <image|video|audio|document|all>")
	}
	if args[0] == "all" {
		s.p.Folders.SetCurrentView(nil)
		return nil
	}
	if !util.ValidFileType(args[0]) {
		return fmt.Errorf("unknown file type %q", args[0])
	}
	v := args[0]
	s.p.Folders.SetCurrentView(&v)
	return nil
}

func (s *shell) cmdUpload(args []string) error {
	if _, err := s.requireUser(); err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: upload <path> [tag,tag,...]")
	}
	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", args[0])
	}
	var tags []string
	if len(args) > 1 {
		for _, t := range strings.Split(args[1], ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	name := filepath.Base(args[0])
	meta := portal.FileMeta{
		Name:     name,
		MIME:     mime.TypeByExtension(filepath.Ext(name)),
		Size:     info.Size(),
		URL:      "mem://" + name,
		Tags:     tags,
		FolderID: s.p.Folders.CurrentFolder(),
	}
	id, err := s.p.Files.SimulateUpload(context.Background(), meta, func(done, total int64) {
		if total > 0 {
			fmt.Printf("\ruploading %s: %3d%%", name, done*100/total)
		}
	})
	fmt.Println()
	if err != nil {
		return err
	}
	if meta.FolderID != nil {
		if err := s.p.Folders.AddFile(*meta.FolderID, id); err != nil {
			return err
		}
	}
	fmt.Println("uploaded", id)
	return nil
}

func (s *shell) printFiles(files []db.File) {
	if view := s.p.Folders.CurrentView(); view != nil {
		kept := files[:0]
		for _, f := range files {
			if f.Type == *view {
				kept = append(kept, f)
			}
		}
		files = kept
	}
	for _, f := range files {
		tags := ""
		if len(f.Tags) > 0 {
			tags = " [" + strings.Join(f.Tags, ",") + "]"
		}
		fmt.Printf("  %s\t%s\t%s\tby %s%s\t(%s)\n",
			f.Name, f.Type, util.FormatSize(f.Size), f.UploadedBy, tags, f.ID)
	}
}

func (s *shell) cmdFiles(args []string) error {
	var (
		files []db.File
		err   error
	)
	if len(args) == 1 {
		if !util.ValidFileType(args[0]) {
			return fmt.Errorf("unknown file type %q", args[0])
		}
		files, err = s.p.Files.ByType(args[0])
	} else {
		files, err = s.p.Files.List()
	}
	if err != nil {
		return err
	}
	s.printFiles(files)
	return nil
}

func (s *shell) cmdSearch(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: search <text>")
	}
	files, err := s.p.Files.Search(strings.Join(args, " "))
	if err != nil {
		return err
	}
	s.printFiles(files)
	return nil
}

func (s *shell) cmdRecent(args []string) error {
	preset := portal.RangeWeek
	if len(args) == 1 {
		preset = args[0]
	}
	start, end := portal.RangeForPreset(preset, time.Now())
	files, err := s.p.Files.ByDateRange(start, end)
	if err != nil {
		return err
	}
	s.printFiles(files)
	return nil
}

func (s *shell) cmdGet(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: get <file-id>")
	}
	if err := s.p.Files.Download(args[0]); err != nil {
		return err
	}
	f, err := s.p.Files.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("content reference: %s\n", f.URL)
	return nil
}

func (s *shell) cmdRm(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <file-id>")
	}
	f, err := s.p.Files.Get(args[0])
	if err != nil {
		return err
	}
	if err := s.p.Files.Remove(args[0]); err != nil {
		return err
	}
	if f.FolderID != nil {
		if err := s.p.Folders.RemoveFile(*f.FolderID, f.ID); err != nil {
			return err
		}
	}
	fmt.Println("deleted", f.Name)
	return nil
}

func (s *shell) cmdShare(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: share <file-id> [hours] [max-downloads]")
	}
	hours := 24
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid hours %q", args[1])
		}
		hours = clamp(n, config.MinShareExpiryHours, config.MaxShareExpiryHours)
	}
	var max *int
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid max downloads %q", args[2])
		}
		n = clamp(n, config.MinShareDownloads, config.MaxShareDownloads)
		max = &n
	}

	password := util.GeneratePassword(12)
	id, err := s.p.Shares.Create(args[0], password, hours, max)
	if err != nil {
		return err
	}
	url := s.p.Shares.URL(id)
	fmt.Printf("Link:     %s\nPassword: %s\nExpires:  in %dh\n", url, password, hours)
	if max != nil {
		fmt.Printf("Max downloads: %d\n", *max)
	}
	util.PrintTerminalQR(url)
	return nil
}

func (s *shell) cmdShares() error {
	links, err := s.p.Shares.List()
	if err != nil {
		return err
	}
	for _, l := range links {
		max := "∞"
		if l.MaxDownloads != nil {
			max = strconv.Itoa(*l.MaxDownloads)
		}
		fmt.Printf("  %s\tfile=%s\texpires=%s\tdownloads=%d/%s\n",
			l.ID, l.FileID, l.ExpiresAt.Format("2006-01-02 15:04"), l.DownloadCount, max)
	}
	return nil
}

func (s *shell) cmdShareRm(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: share-rm <link-id>")
	}
	return s.p.Shares.Delete(args[0])
}

// cmdOpen redeems a share link the way the public landing page would:
// password-gated, no login required.
func (s *shell) cmdOpen(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: open <link-id>")
	}
	password, err := s.promptPassword("Link password")
	if err != nil {
		return err
	}
	shared, err := s.p.Shares.Validate(args[0], password)
	if err != nil {
		return err
	}
	if err := s.p.Shares.IncrementDownloads(args[0]); err != nil {
		return err
	}
	fmt.Printf("%s (%s, %s)\ncontent reference: %s\n",
		shared.Name, shared.Type, util.FormatSize(shared.Size), shared.URL)
	return nil
}

func (s *shell) requireManager() (db.User, error) {
	u, err := s.requireUser()
	if err != nil {
		return db.User{}, err
	}
	if !u.Permissions.ManageUsers {
		return db.User{}, portal.ErrPermissionDenied
	}
	return u, nil
}

func (s *shell) cmdUsers() error {
	if _, err := s.requireManager(); err != nil {
		return err
	}
	users, err := s.p.Identity.Users()
	if err != nil {
		return err
	}
	for _, u := range users {
		last := "never"
		if u.LastLogin != nil {
			last = u.LastLogin.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %s\t%s\t%s\tlast login %s\t(%s)\n", u.Email, u.Name, u.Role, last, u.ID)
	}
	return nil
}

func (s *shell) cmdUserAdd(args []string) error {
	if _, err := s.requireManager(); err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("usage: useradd <email> <name> <role>")
	}
	password, err := s.promptPasswordTwice("Password")
	if err != nil {
		return err
	}
	u, err := s.p.Identity.CreateUser(args[0], password, args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Printf("created %s (%s)\n", u.Email, u.ID)
	return nil
}

func (s *shell) cmdUserDel(args []string) error {
	if _, err := s.requireManager(); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: userdel <user-id>")
	}
	return s.p.Identity.DeleteUser(args[0])
}

func (s *shell) cmdRole(args []string) error {
	if _, err := s.requireManager(); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: role <user-id> <viewer|editor|admin|super_admin>")
	}
	return s.p.Identity.UpdateRole(args[0], args[1])
}

func (s *shell) cmdPerm(args []string) error {
	if _, err := s.requireManager(); err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("usage: perm <user-id> <view|upload|download|delete|manage_users> <on|off>")
	}
	value := args[2] == "on"
	var patch auth.PermissionPatch
	switch args[1] {
	case "view":
		patch.View = &value
	case "upload":
		patch.Upload = &value
	case "download":
		patch.Download = &value
	case "delete":
		patch.Delete = &value
	case "manage_users":
		patch.ManageUsers = &value
	default:
		return fmt.Errorf("unknown permission %q", args[1])
	}
	return s.p.Identity.UpdatePermissions(args[0], patch)
}

func (s *shell) cmdAudit(args []string) error {
	if _, err := s.requireManager(); err != nil {
		return err
	}
	limit := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid limit %q", args[0])
		}
		limit = n
	}
	logs, err := s.p.Audit.Logs(limit)
	if err != nil {
		return err
	}
	for _, l := range logs {
		target := ""
		if l.TargetID != nil {
			target = " target=" + *l.TargetID
		}
		fmt.Printf("  %s\t%s\tuser=%s%s\t%s\n",
			l.CreatedAt.Format("2006-01-02 15:04:05"), l.Action, l.UserID, target, l.Details)
	}
	return nil
}

func (s *shell) cmdStats() error {
	st, err := s.p.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("files: %d\tuploads: %d\tdownloads: %d\tusers: %d\n",
		st.TotalFiles, st.Uploads, st.Downloads, st.Users)
	return nil
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func (s *shell) promptPassword(prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		return string(b), err
	}
	text, err := s.in.ReadString('\n')
	return strings.TrimSpace(text), err
}

func (s *shell) promptPasswordTwice(label string) (string, error) {
	first, err := s.promptPassword(label)
	if err != nil {
		return "", err
	}
	second, err := s.promptPassword(label + " (confirm)")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("passwords do not match")
	}
	if strings.TrimSpace(first) == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return first, nil
}
