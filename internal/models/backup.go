package models

// BackupTarget describes a file the backup stage writes for one device.
type BackupTarget struct {
	Kind string // "config" or "firmware"
	Path string
}
