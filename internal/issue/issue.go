// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"maps"
	stdslices "slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/invowk/mvninvoke/pkg/invocation"
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink  // reference documentation for this issue type
		extLinks []HttpLink  // external links that might be useful for the user
	}
)

const (
	MavenHomeNotFoundId Id = iota + 1
	ExecutableNotFoundId
	LocalRepositoryNotDirectoryId
	InvalidGoalsId
	ConfigLoadFailedId
	LaunchFailedId
	PermissionDeniedId
	TimeoutId
	CanceledId
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return stdslices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return stdslices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown using the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	mavenHomeNotFoundIssue = &Issue{
		id: MavenHomeNotFoundId,
		mdMsg: `
# Maven installation not found!

No usable Maven home was configured, so there is nowhere to look for the ` + "`mvn`" + ` launcher.

## Search order
1. ` + "`--maven-home`" + ` or the request's Maven home
2. ` + "`maven_home`" + ` in the config file
3. The ` + "`maven.home`" + ` property
4. The ` + "`MAVEN_HOME`" + ` environment variable
5. The ` + "`M2_HOME`" + ` environment variable

## Things you can try:
- Point MAVEN_HOME at your installation:
~~~
$ export MAVEN_HOME=/opt/apache-maven-3.9.9
~~~
- Add the Maven wrapper to your project so no installation is needed:
~~~
$ mvn wrapper:wrapper
~~~`,
		docLinks: []HttpLink{"https://maven.apache.org/install.html"},
	}

	executableNotFoundIssue = &Issue{
		id: ExecutableNotFoundId,
		mdMsg: `
# Maven executable not found!

The project directory and ` + "`<maven home>/bin`" + ` were searched, but no launcher file exists there.

## Things you can try:
- Check that the Maven home contains ` + "`bin/mvn`" + ` (` + "`bin/mvn.cmd`" + ` on Windows)
- Pass an absolute path with ` + "`--maven-executable`" + `
- Commit the ` + "`mvnw`" + ` wrapper to the project root`,
		docLinks: []HttpLink{"https://maven.apache.org/wrapper/"},
	}

	localRepositoryNotDirectoryIssue = &Issue{
		id: LocalRepositoryNotDirectoryId,
		mdMsg: `
# Local repository is not a directory!

The local repository override must name an existing directory.

## Things you can try:
- Create the directory first:
~~~
$ mkdir -p ~/.m2/repository
~~~
- Remove ` + "`local_repository`" + ` from the config file to use Maven's default`,
		docLinks: []HttpLink{"https://maven.apache.org/guides/introduction/introduction-to-repositories.html"},
	}

	invalidGoalsIssue = &Issue{
		id: InvalidGoalsId,
		mdMsg: `
# Goals could not be parsed!

The goal line has an unbalanced quote or a trailing escape character.

## Things you can try:
- Close every ` + "`\"`" + ` and ` + "`'`" + ` quote
- Pass arguments after ` + "`--`" + ` to send them verbatim:
~~~
$ mvninvoke run -- clean "-Dmessage=hello world"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show where the file is expected:
~~~
$ mvninvoke config path
~~~
- Write a fresh default file:
~~~
$ mvninvoke config init
~~~
- Validate CUE syntax:
~~~
$ cue vet config.cue
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Maven could not be started!

The executable was found but the operating system refused to run it.

## Things you can try:
- Make sure the launcher is executable:
~~~
$ chmod +x mvnw
~~~
- Check that the script's interpreter (first line) exists
- Run with ` + "`--verbose`" + ` to see the exact command line`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A file or directory needed for the invocation is not accessible.

## Things you can try:
- Check ownership and permissions of the project and local repository
- Run from a directory you own`,
	}

	timeoutIssue = &Issue{
		id: TimeoutId,
		mdMsg: `
# Build timed out!

Maven did not finish within the configured timeout and was terminated.

## Things you can try:
- Raise the limit with ` + "`--timeout`" + ` or ` + "`timeout_seconds`" + ` in the config file
- Use ` + "`--timeout 0`" + ` to disable it
- Build fewer modules with ` + "`--projects`" + ``,
	}

	canceledIssue = &Issue{
		id: CanceledId,
		mdMsg: `
# Build canceled!

The invocation was interrupted and Maven was terminated before it finished.`,
	}

	issues = map[Id]*Issue{
		mavenHomeNotFoundIssue.Id():           mavenHomeNotFoundIssue,
		executableNotFoundIssue.Id():          executableNotFoundIssue,
		localRepositoryNotDirectoryIssue.Id(): localRepositoryNotDirectoryIssue,
		invalidGoalsIssue.Id():                invalidGoalsIssue,
		configLoadFailedIssue.Id():            configLoadFailedIssue,
		launchFailedIssue.Id():                launchFailedIssue,
		permissionDeniedIssue.Id():            permissionDeniedIssue,
		timeoutIssue.Id():                     timeoutIssue,
		canceledIssue.Id():                    canceledIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, id := range stdslices.Sorted(maps.Keys(issues)) {
		values = append(values, issues[id])
	}
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}

// ForError returns the issue that explains err, or nil when none applies.
// Permission problems take precedence over the launch failure they cause.
func ForError(err error) *Issue {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, invocation.ErrHomeNotFound):
		return Get(MavenHomeNotFoundId)
	case errors.Is(err, invocation.ErrExecutableNotFound):
		return Get(ExecutableNotFoundId)
	case errors.Is(err, invocation.ErrLocalRepositoryNotDirectory):
		return Get(LocalRepositoryNotDirectoryId)
	case errors.Is(err, invocation.ErrInvalidGoals):
		return Get(InvalidGoalsId)
	case errors.Is(err, fs.ErrPermission):
		return Get(PermissionDeniedId)
	case errors.Is(err, invocation.ErrLaunch):
		return Get(LaunchFailedId)
	case errors.Is(err, invocation.ErrTimeout):
		return Get(TimeoutId)
	case errors.Is(err, invocation.ErrCanceled):
		return Get(CanceledId)
	default:
		return nil
	}
}
