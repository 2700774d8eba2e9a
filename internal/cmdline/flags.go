// SPDX-License-Identifier: MPL-2.0

package cmdline

// Literal tokens understood by the invoked tool.
const (
	flagBatchMode         = "-B"
	flagOffline           = "-o"
	flagUpdateSnapshots   = "-U"
	flagNoSnapshotUpdates = "-nsu"
	flagNonRecursive      = "-N"
	flagDebug             = "-X"
	flagShowErrors        = "-e"
	flagStrictChecksums   = "-C"
	flagLaxChecksums      = "-c"
	flagNonPluginUpdates  = "-npu"
	flagShowVersion       = "-V"
	flagQuiet             = "-q"
	flagNoTransfer        = "-ntp"
	flagBuilder           = "-b"
	flagResumeFrom        = "-rf"
	flagProjects          = "-pl"
	flagAlsoMake          = "-am"
	flagAlsoMakeDeps      = "-amd"
	flagProperty          = "-D"
	flagFile              = "-f"
	flagSettings          = "-s"
	flagGlobalSettings    = "-gs"
	flagToolchains        = "-t"
	flagGlobalToolchains  = "-gt"
	flagProfiles          = "-P"
	flagThreads           = "-T"

	localRepoProperty = "maven.repo.local"
	defaultPomName    = "pom.xml"
)

// Environment variables set on the launched process.
const (
	EnvTerminateCmd = "MAVEN_TERMINATE_CMD"
	EnvJavaHome     = "JAVA_HOME"
	EnvMavenOpts    = "MAVEN_OPTS"
)
