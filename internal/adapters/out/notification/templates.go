package notification

const subjectTemplates = `
{{define "customer_order_placed"}}{{.StoreName}}: order {{.Snapshot.OrderID}} received{{end}}
{{define "admin_order_placed"}}New order {{.Snapshot.OrderID}} from {{.Snapshot.CustomerName}}{{end}}
{{define "brand_order_placed"}}New order {{.Snapshot.OrderID}} for {{.BrandName}}{{end}}
{{define "customer_status_changed"}}{{.StoreName}}: your {{.BrandName}} items are {{.TargetStatus}}{{end}}
`

const textTemplates = `
{{define "lines"}}{{range .}}- {{.ProductName}}{{if .Size}} ({{.Size}}){{end}} x{{.Quantity}}: {{money .Subtotal}}
{{end}}{{end}}

{{define "customer_order_placed"}}Hi {{.Snapshot.CustomerName}},

Thank you for your order {{.Snapshot.OrderID}}.

{{template "lines" .Lines}}
Subtotal: {{money .Snapshot.Subtotal}}
Delivery: {{money .Snapshot.DeliveryCharge}}
Total: {{money .Snapshot.GrandTotal}}
Payment: {{.Snapshot.PaymentMethod}} ({{.Snapshot.PaymentStatus}})

Shipping to {{.Snapshot.Address}}, {{.Snapshot.City}}.

{{.StoreName}}
{{end}}

{{define "admin_order_placed"}}Order {{.Snapshot.OrderID}} was placed.

Customer: {{.Snapshot.CustomerName}} <{{.Snapshot.CustomerEmail}}> {{.Snapshot.CustomerPhone}}
Destination: {{.Snapshot.Address}}, {{.Snapshot.City}}

{{range .Snapshot.Groups}}{{.BrandName}}: {{money .Subtotal}} + {{money .DeliveryCharge}} delivery = {{money .Total}}
{{end}}
Total: {{money .Snapshot.GrandTotal}}
{{end}}

{{define "brand_order_placed"}}Hello {{.BrandName}},

Order {{.Snapshot.OrderID}} contains your products:

{{template "lines" .Lines}}
Ship to {{.Snapshot.CustomerName}}, {{.Snapshot.Address}}, {{.Snapshot.City}}.
{{end}}

{{define "customer_status_changed"}}Hi {{.Snapshot.CustomerName}},

Your items from {{.BrandName}} in order {{.Snapshot.OrderID}} are now {{.TargetStatus}}.

{{.StoreName}}
{{end}}
`

const htmlTemplates = `
{{define "lines"}}<table>
<tr><th>Product</th><th>Size</th><th>Qty</th><th>Subtotal</th></tr>
{{range .}}<tr><td>{{.ProductName}}</td><td>{{.Size}}</td><td>{{.Quantity}}</td><td>{{money .Subtotal}}</td></tr>
{{end}}</table>{{end}}

{{define "customer_order_placed"}}<html><body>
<p>Hi {{.Snapshot.CustomerName}},</p>
<p>Thank you for your order <b>{{.Snapshot.OrderID}}</b>.</p>
{{template "lines" .Lines}}
<p>Subtotal: {{money .Snapshot.Subtotal}}<br>Delivery: {{money .Snapshot.DeliveryCharge}}<br><b>Total: {{money .Snapshot.GrandTotal}}</b></p>
<p>Shipping to {{.Snapshot.Address}}, {{.Snapshot.City}}.</p>
<p>{{.StoreName}}</p>
</body></html>{{end}}

{{define "admin_order_placed"}}<html><body>
<p>Order <b>{{.Snapshot.OrderID}}</b> was placed by {{.Snapshot.CustomerName}} ({{.Snapshot.CustomerEmail}}).</p>
<ul>{{range .Snapshot.Groups}}<li>{{.BrandName}}: {{money .Total}}</li>{{end}}</ul>
<p><b>Total: {{money .Snapshot.GrandTotal}}</b></p>
</body></html>{{end}}

{{define "brand_order_placed"}}<html><body>
<p>Hello {{.BrandName}},</p>
<p>Order <b>{{.Snapshot.OrderID}}</b> contains your products:</p>
{{template "lines" .Lines}}
<p>Ship to {{.Snapshot.CustomerName}}, {{.Snapshot.Address}}, {{.Snapshot.City}}.</p>
</body></html>{{end}}

{{define "customer_status_changed"}}<html><body>
<p>Hi {{.Snapshot.CustomerName}},</p>
<p>Your items from {{.BrandName}} in order <b>{{.Snapshot.OrderID}}</b> are now <b>{{title .TargetStatus}}</b>.</p>
<p>{{.StoreName}}</p>
</body></html>{{end}}
`
