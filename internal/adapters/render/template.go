package render

const mapTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/leaflet@1.9.4/dist/leaflet.css">
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/leaflet.markercluster@1.5.3/dist/MarkerCluster.css">
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css">
  <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.css">
  <link rel="stylesheet" href="https://netdna.bootstrapcdn.com/bootstrap/3.0.0/css/bootstrap-glyphicons.css">
  <style>
    html, body, #map { width: 100%; height: 100%; margin: 0; padding: 0; }
    .legend { background: #fff; padding: 6px 8px; font: 12px/1.4 sans-serif; box-shadow: 0 0 6px rgba(0,0,0,.3); border-radius: 4px; }
    .legend .title { font-weight: bold; margin-bottom: 4px; }
    .legend i { width: 18px; height: 12px; float: left; margin-right: 6px; opacity: .8; }
  </style>
  <script src="https://cdn.jsdelivr.net/npm/leaflet@1.9.4/dist/leaflet.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"></script>
  <script src="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.js"></script>
</head>
<body>
  <div id="map"></div>
  <script>
    const data = {{.Payload}};

    const map = L.map("map").setView(data.center, data.zoom);
    L.tileLayer(data.tiles.url, {
      attribution: data.tiles.attribution,
      subdomains: data.tiles.subdomains || "abc",
      maxZoom: data.tiles.max_zoom,
    }).addTo(map);

    L.geoJSON(data.boundaries, {
      style: function (feature) {
        const fill = feature.properties && feature.properties.fill;
        return {
          color: "black",
          weight: 1,
          opacity: data.line_opacity,
          fillColor: fill || "transparent",
          fillOpacity: fill ? data.fill_opacity : 0,
        };
      },
    }).addTo(map);

    function label(text) {
      const el = document.createElement("span");
      el.textContent = text;
      return el;
    }

    const cluster = L.markerClusterGroup();
    data.markers.forEach(function (m) {
      const icon = L.AwesomeMarkers.icon({ icon: "info-sign", markerColor: "blue", prefix: "glyphicon" });
      L.marker([m.lat, m.lon], { icon: icon })
        .bindPopup(label(m.text))
        .bindTooltip(label(m.text))
        .addTo(cluster);
    });
    cluster.addTo(map);

    const legend = L.control({ position: "topright" });
    legend.onAdd = function () {
      const div = L.DomUtil.create("div", "legend");
      const title = L.DomUtil.create("div", "title", div);
      title.textContent = data.legend.title;
      const s = data.legend.scale;
      s.colors.forEach(function (c, i) {
        const row = L.DomUtil.create("div", "", div);
        const swatch = L.DomUtil.create("i", "", row);
        swatch.style.background = c;
        row.appendChild(document.createTextNode(
          Math.round(s.thresholds[i]) + " – " + Math.round(s.thresholds[i + 1])));
      });
      return div;
    };
    legend.addTo(map);
  </script>
</body>
</html>
`
