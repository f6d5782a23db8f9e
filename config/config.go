package config

type Config struct {
	ServerAddress string    `yaml:"server,omitempty"`
	StorePath     string    `yaml:"store,omitempty"`
	DetInfo       []DetInfo `yaml:"detInfo"`
}

func (c *Config) DetInfoFile(phase string) string {
	for _, info := range c.DetInfo {
		if info.Phase == phase {
			return info.File
		}
	}
	return ""
}
