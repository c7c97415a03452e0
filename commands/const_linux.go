package commands

const (
	_etc = "/usr/local/etc/parent-sheets"
	_var = "/usr/local/var/parent-sheets"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = _etc + "/parent-sheets.toml"
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"

	BROWSER = "xdg-open"
)
