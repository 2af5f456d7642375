package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// The unique index on (turf_id, court, date, slot) is the atomic backstop
// for the allocator: two transactions racing to claim the same court can
// both pass the existence check, but only one insert survives.
func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_2251346504",
			"created": "2025-08-20 08:26:52.417Z",
			"updated": "2025-08-20 08:26:52.417Z",
			"name": "bookings",
			"type": "base",
			"system": false,
			"fields": [
				{
					"autogeneratePattern": "[a-z0-9]{15}",
					"hidden": false,
					"id": "text3208210256",
					"max": 15,
					"min": 15,
					"name": "id",
					"pattern": "^[a-z0-9]+$",
					"presentable": false,
					"primaryKey": true,
					"required": true,
					"system": true,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text1579384326",
					"max": 0,
					"min": 0,
					"name": "user_id",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": true,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text2462348188",
					"max": 0,
					"min": 0,
					"name": "turf_id",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": true,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text2462348189",
					"max": 0,
					"min": 0,
					"name": "turf_name",
					"pattern": "",
					"presentable": true,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text2462348190",
					"max": 0,
					"min": 0,
					"name": "turf_image",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text1587448267",
					"max": 0,
					"min": 0,
					"name": "location",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": false,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text3479234172",
					"max": 0,
					"min": 0,
					"name": "court",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": true,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text3660247094",
					"max": 10,
					"min": 10,
					"name": "date",
					"pattern": "^\\d{4}-\\d{2}-\\d{2}$",
					"presentable": false,
					"primaryKey": false,
					"required": true,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "text2548277648",
					"max": 0,
					"min": 0,
					"name": "slot",
					"pattern": "",
					"presentable": false,
					"primaryKey": false,
					"required": true,
					"system": false,
					"type": "text"
				},
				{
					"hidden": false,
					"id": "bool1547992806",
					"name": "play_with_stranger",
					"presentable": false,
					"required": false,
					"system": false,
					"type": "bool"
				},
				{
					"hidden": false,
					"id": "number1932854916",
					"max": null,
					"min": 0,
					"name": "total_members",
					"onlyInt": true,
					"presentable": false,
					"required": false,
					"system": false,
					"type": "number"
				},
				{
					"hidden": false,
					"id": "number1932854917",
					"max": null,
					"min": 0,
					"name": "remaining_members",
					"onlyInt": true,
					"presentable": false,
					"required": false,
					"system": false,
					"type": "number"
				},
				{
					"hidden": false,
					"id": "json3819287502",
					"maxSize": 2000000,
					"name": "members",
					"presentable": false,
					"required": false,
					"system": false,
					"type": "json"
				},
				{
					"hidden": false,
					"id": "number2392944706",
					"max": null,
					"min": 0,
					"name": "price",
					"onlyInt": false,
					"presentable": false,
					"required": false,
					"system": false,
					"type": "number"
				},
				{
					"hidden": false,
					"id": "autodate2990389176",
					"name": "created",
					"onCreate": true,
					"onUpdate": false,
					"presentable": false,
					"system": false,
					"type": "autodate"
				},
				{
					"hidden": false,
					"id": "autodate3332085495",
					"name": "updated",
					"onCreate": true,
					"onUpdate": true,
					"presentable": false,
					"system": false,
					"type": "autodate"
				}
			],
			"indexes": [
				"CREATE UNIQUE INDEX ` + "`idx_bookings_slot_claim`" + ` ON ` + "`bookings`" + ` (` + "`turf_id`" + `, ` + "`court`" + `, ` + "`date`" + `, ` + "`slot`" + `)",
				"CREATE INDEX ` + "`idx_bookings_user`" + ` ON ` + "`bookings`" + ` (` + "`user_id`" + `)",
				"CREATE INDEX ` + "`idx_bookings_turf_date_slot`" + ` ON ` + "`bookings`" + ` (` + "`turf_id`" + `, ` + "`date`" + `, ` + "`slot`" + `)"
			],
			"listRule": null,
			"viewRule": null,
			"createRule": null,
			"updateRule": null,
			"deleteRule": null
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), &collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pbc_2251346504")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
