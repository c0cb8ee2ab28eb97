package publish

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/princessupload/audience-newsletter/internal/common"
)

// SFTPConfig holds the website upload settings.
type SFTPConfig struct {
	Host     string
	User     string
	Password string
	// RemoteDirs are candidate upload directories, probed in order.
	// Empty derives the usual web roots from User.
	RemoteDirs []string
	RemoteName string
	Port       int
	Timeout    time.Duration
}

const defaultRemoteName = "lottery-newsletter.html"

// Uploader copies the rendered newsletter to the website over SFTP.
type Uploader struct {
	config SFTPConfig
}

// NewUploader validates the connection settings and returns an
// uploader. Nothing is dialed until Upload.
func NewUploader(config SFTPConfig) (*Uploader, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("%w: sftp host is required", common.ErrMissingConfig)
	}
	if config.User == "" || config.Password == "" {
		return nil, fmt.Errorf("%w: sftp user and password are required", common.ErrMissingConfig)
	}
	if config.Port == 0 {
		config.Port = 22
	}
	if config.RemoteName == "" {
		config.RemoteName = defaultRemoteName
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if len(config.RemoteDirs) == 0 {
		config.RemoteDirs = []string{
			"/home/" + config.User + "/www",
			"/home/" + config.User + "/public_html",
			"/home/" + config.User,
		}
	}

	return &Uploader{config: config}, nil
}

// Upload copies localPath to the first remote directory that exists
// and returns the remote path it wrote.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	local, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open newsletter: %w", err)
	}
	defer func() { _ = local.Close() }()

	client, closeAll, err := u.dial(ctx)
	if err != nil {
		return "", err
	}
	defer closeAll()

	dir, err := u.findRemoteDir(client)
	if err != nil {
		return "", err
	}

	remotePath := path.Join(dir, u.config.RemoteName)
	remote, err := client.Create(remotePath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", remotePath, err)
	}
	defer func() { _ = remote.Close() }()

	written, err := io.Copy(remote, local)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", remotePath, err)
	}

	slog.Info("uploaded newsletter", "remote", remotePath, "bytes", written)
	return remotePath, nil
}

// dial opens the SSH connection and SFTP session. The returned closer
// tears both down.
func (u *Uploader) dial(ctx context.Context) (*sftp.Client, func(), error) {
	addr := net.JoinHostPort(u.config.Host, fmt.Sprintf("%d", u.config.Port))

	sshConfig := &ssh.ClientConfig{
		User: u.config.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(u.config.Password),
		},
		// The shared host rotates its key on plan migrations.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec
		Timeout:         u.config.Timeout,
	}

	dialer := &net.Dialer{Timeout: u.config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, sshConfig)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("ssh handshake with %s failed: %w", addr, err)
	}
	sshClient := ssh.NewClient(sshConn, chans, reqs)

	client, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, nil, fmt.Errorf("failed to start sftp session: %w", err)
	}

	closeAll := func() {
		_ = client.Close()
		_ = sshClient.Close()
	}
	return client, closeAll, nil
}

// findRemoteDir probes the candidate directories and returns the first
// one that exists on the server.
func (u *Uploader) findRemoteDir(client *sftp.Client) (string, error) {
	for _, dir := range u.config.RemoteDirs {
		if _, err := client.Stat(dir); err == nil {
			return dir, nil
		}
		slog.Debug("remote directory not found", "dir", dir)
	}
	return "", fmt.Errorf("no upload directory found among %v", u.config.RemoteDirs)
}
