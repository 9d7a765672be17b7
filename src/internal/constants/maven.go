package constants

// Maven distribution naming
const (
	// ArchivePrefix is the base name shared by every Apache Maven binary
	// distribution and by the top-level directory inside its archive.
	ArchivePrefix = "apache-maven-"

	// ArchiveSuffix completes the binary archive file name after the version.
	ArchiveSuffix = "-bin" + ExtZip

	// BinaryMaven is the Maven launcher name inside bin/.
	BinaryMaven = "mvn"

	// BinDir is the directory holding the launcher inside an installation.
	BinDir = "bin"

	// VersionFlag asks the launcher to print its version banner.
	VersionFlag = "-v"
)

// ArchiveName returns the binary archive file name for a version,
// e.g. apache-maven-3.9.6-bin.zip
func ArchiveName(version string) string {
	return ArchivePrefix + version + ArchiveSuffix
}

// InstallDirName returns the directory name the archive unpacks to,
// e.g. apache-maven-3.9.6
func InstallDirName(version string) string {
	return ArchivePrefix + version
}
