// SPDX-License-Identifier: MPL-2.0

// Package toolpath locates the Maven installation and the executable to launch.
//
// The home directory is taken from, in order: the request, the invoker
// default, the "maven.home" property, and the MAVEN_HOME and M2_HOME
// environment variables. Properties and environment are handed to the
// Resolver as plain maps captured once at startup, never read ad hoc.
//
// Executables are searched in the project directory first (where a "mvnw"
// wrapper usually lives) and in <home>/bin second.
package toolpath
