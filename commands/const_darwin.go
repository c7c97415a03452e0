package commands

const (
	_etc = "/usr/local/etc/com.github.parent-sheets"
	_var = "/usr/local/var/com.github.parent-sheets"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = _etc + "/parent-sheets.toml"
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"

	BROWSER = "open"
)
