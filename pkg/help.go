package lambdakit

import (
	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/settings/v2"
)

// HelpStatic generates the help output for static builds. Any additional
// components, such as handler components, are listed alongside the runtime
// settings.
func HelpStatic(components ...interface{}) string {
	groups := []settings.Group{}
	for _, c := range append([]interface{}{&runhttp.Component{}, &LoggerComponent{}}, components...) {
		grp, err := settings.GroupFromComponent(c)
		if err != nil {
			continue
		}
		groups = append(groups, grp)
	}
	return settings.ExampleEnvGroups([]settings.Group{&settings.SettingGroup{
		NameValue:   EnvPrefix,
		GroupValues: groups,
	}})
}
