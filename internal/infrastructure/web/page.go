package web

import (
	"LaunchDashboard/internal/domain"
	"LaunchDashboard/internal/reactive"
)

type pageData struct {
	Layout       domain.Layout
	Format       string
	Dependencies []reactive.Dependency
	PieSrc       string
	ScatterSrc   string
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Layout.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 0 auto; max-width: 1100px; padding: 1rem; }
h1 { text-align: center; color: #503D36; font-size: 40px; }
select { width: 80%; padding: 3px; font-size: 20px; text-align-last: center; }
.slider { display: flex; gap: 1rem; align-items: center; }
.slider input { flex: 1; }
.graph img { width: 100%; height: auto; }
</style>
</head>
<body>
<h1>{{.Layout.Title}}</h1>
{{with .Layout.SiteDropdown}}
<select id="{{.ID}}" name="{{.ID}}"{{if .Searchable}} data-searchable="true"{{end}}>
  <option value="" disabled>{{.Placeholder}}</option>
  {{- $selected := .Value}}
  {{- range .Options}}
  <option value="{{.Value}}"{{if eq .Value $selected}} selected{{end}}>{{.Label}}</option>
  {{- end}}
</select>
{{end}}
<br>
<div class="graph" id="{{.Layout.PieGraph.ID}}"><img alt="{{.Layout.PieGraph.ID}}" src="{{.PieSrc}}"></div>
<br>
<p>{{.Layout.PayloadLabel}}</p>
{{with .Layout.PayloadSlider}}
<div class="slider" id="{{.ID}}">
  <input type="range" id="{{.ID}}-low" data-handle="low" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value.Low}}" list="{{.ID}}-marks">
  <input type="range" id="{{.ID}}-high" data-handle="high" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value.High}}" list="{{.ID}}-marks">
  <output id="{{.ID}}-value">{{.Snap .Value.Low}} - {{.Snap .Value.High}}</output>
  <datalist id="{{.ID}}-marks">
    {{- range .Marks}}
    <option value="{{.Value}}" label="{{.Label}}"></option>
    {{- end}}
  </datalist>
</div>
{{end}}
<div class="graph" id="{{.Layout.ScatterGraph.ID}}"><img alt="{{.Layout.ScatterGraph.ID}}" src="{{.ScatterSrc}}"></div>
<script>
const dependencies = {{.Dependencies}};
const format = {{.Format}};
const siteID = {{.Layout.SiteDropdown.ID}};
const sliderID = {{.Layout.PayloadSlider.ID}};

function currentInputs() {
  const q = new URLSearchParams();
  q.append(siteID, document.getElementById(siteID).value);
  q.append(sliderID, document.getElementById(sliderID + "-low").value);
  q.append(sliderID, document.getElementById(sliderID + "-high").value);
  return q;
}

function refresh(changed) {
  const all = currentInputs();
  for (const dep of dependencies) {
    if (!dep.inputs.includes(changed)) {
      continue;
    }
    const q = new URLSearchParams();
    for (const id of dep.inputs) {
      for (const v of all.getAll(id)) {
        q.append(id, v);
      }
    }
    document.querySelector("#" + dep.output + " img").src = "/charts/" + dep.output + "." + format + "?" + q.toString();
  }
}

document.getElementById(siteID).addEventListener("change", () => refresh(siteID));
for (const handle of ["-low", "-high"]) {
  document.getElementById(sliderID + handle).addEventListener("change", () => {
    const low = document.getElementById(sliderID + "-low").value;
    const high = document.getElementById(sliderID + "-high").value;
    document.getElementById(sliderID + "-value").textContent = low + " - " + high;
    refresh(sliderID);
  });
}
</script>
</body>
</html>
`
