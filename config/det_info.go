package config

type DetInfo struct {
	Phase string `yaml:"phase"`
	File  string `yaml:"file"`
}
