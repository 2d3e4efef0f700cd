// Package sniff identifies what a file actually is, independent of what it
// is named. Content sniffing over a bounded header catches binary and
// extensionless files; a second extension-refinement pass catches textual
// formats whose bytes carry no signal.
package sniff

// Kind is the canonical format tag inferred for a subject file. It is
// computed once per invocation and never changes mid-pipeline.
type Kind string

const (
	KindNone     Kind = ""
	KindShell    Kind = "shell"
	KindPerl     Kind = "perl"
	KindPython   Kind = "python-source"
	KindXML      Kind = "xml"
	KindELFArm64 Kind = "elf-arm64"
	KindAOF      Kind = "riscos-aof"
	KindAIF      Kind = "riscos-aif"
	KindALF      Kind = "riscos-alf"
	KindMachO    Kind = "macho"
	KindPlist    Kind = "plist"
	KindSSHKey   Kind = "ssh-key"
	KindCSR      Kind = "csr"
	KindCRT      Kind = "crt"
	KindAr       Kind = "ar"
	KindPyc      Kind = "pyc"
	KindYAML     Kind = "yaml"

	// Kinds produced only by extension refinement
	KindPEM     Kind = "pem"
	KindCHeader Kind = "c-header"
	KindBASIC   Kind = "bbc-basic"
)
