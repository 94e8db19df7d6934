package config

// Embedded so the default Europe/Istanbul zone resolves on minimal images.
import _ "time/tzdata"
