package host

// URI schemes a resolved reference is expected to use. Anything else is
// usually a mistyped CURIE prefix, so resolution flags it.
var (
	registeredIANASchemes = []string{
		"aaa", "aaas", "acap", "cap", "cid", "crid", "data", "dav",
		"dict", "dns", "fax", "ftp", "geo", "go", "gopher", "h323",
		"http", "https", "iax", "icap", "im", "imap", "info", "ipp",
		"iris", "ldap", "mailto", "mid", "modem", "msrp", "msrps",
		"mupdate", "news", "nfs", "nntp", "opaquelocktoken", "pop",
		"pres", "rstp", "service", "shttp", "sieve", "sip", "snmp",
		"soap", "tag", "tel", "telnet", "thismessage", "tn3270", "tip",
		"tv", "urn", "vemmi", "xmpp",
	}
	historicalIANASchemes = []string{
		"mailserver", "prospero", "snews", "videotex", "wais",
	}
	provisionalIANASchemes = []string{
		"afs", "dtn", "dvb", "icon", "ipn", "jps", "oid", "pack",
		"rsync", "ws", "wss",
	}
	otherUsedSchemes = []string{
		"doi", "file", "git", "hdl", "isbn", "javascript", "lsid",
		"mms", "mstp", "rtmp", "rtspu", "sftp", "sips", "sms", "stp",
		"svn",
	}
)

var knownSchemes = buildSchemeSet()

func buildSchemeSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, group := range [][]string{
		registeredIANASchemes,
		historicalIANASchemes,
		provisionalIANASchemes,
		otherUsedSchemes,
	} {
		for _, s := range group {
			set[s] = struct{}{}
		}
	}
	return set
}

// KnownURIScheme reports whether scheme is registered with IANA or in
// common unregistered use.
func KnownURIScheme(scheme string) bool {
	_, ok := knownSchemes[scheme]
	return ok
}
